// Package domain defines the normalized inventory entities, the immutable
// snapshot they live in, and the resolved topology graph.
//
// Entities are built once per resolution run from a fetched snapshot and are
// never mutated afterwards; everything derived (effective tenants, physical
// links, logical overlays) is computed fresh by the topology engine and
// discarded at run boundaries.
package domain
