package topology

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"netfabric/internal/domain"
	"netfabric/internal/netbox"
)

// Result is the full output of one resolution run.
type Result struct {
	RunID       string                              `json:"run_id"`
	ResolvedAt  time.Time                           `json:"resolved_at"`
	Graph       *domain.Graph                       `json:"-"`
	Unresolved  []domain.UnresolvedLink             `json:"unresolved"`
	Diagnostics []domain.Diagnostic                 `json:"diagnostics"`
	MissingRefs []string                            `json:"missing_refs,omitempty"`
	Tenants     map[domain.DeviceID]domain.TenantID `json:"-"`
}

// Resolve runs the whole pipeline over one raw snapshot: normalization,
// tenant resolution, pass-through chain resolution and the logical overlay.
// The returned graph is deterministic for a given input.
func Resolve(ctx context.Context, raw *netbox.Snapshot) (*Result, error) {
	snap, diags := Normalize(raw)
	tenants := ResolveTenants(snap)

	physical, unresolved, err := BuildPhysicalLinks(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("build physical links: %w", err)
	}
	logical := BuildLogicalOverlay(snap)

	graph := assembleGraph(snap, tenants)
	for _, e := range physical {
		graph.AddEdge(e)
	}
	for _, e := range logical {
		graph.AddEdge(e)
	}

	return &Result{
		RunID:       uuid.NewString(),
		ResolvedAt:  time.Now().UTC(),
		Graph:       graph,
		Unresolved:  unresolved,
		Diagnostics: diags,
		MissingRefs: snap.MissingRefs(),
		Tenants:     tenants,
	}, nil
}

// assembleGraph adds a node per normalized entity, annotated with the
// owning device's effective tenant where one applies. Interfaces and ports
// inherit the tenant of the device they sit on.
func assembleGraph(snap *domain.Snapshot, tenants map[domain.DeviceID]domain.TenantID) *domain.Graph {
	g := domain.NewGraph()

	deviceTenant := func(id domain.DeviceID) string {
		return tenantLabel(snap, tenants[id])
	}

	for _, id := range snap.DeviceIDs() {
		dev := snap.Devices[id]
		g.AddNode(domain.Node{
			ID:     domain.NodeRef(domain.NodeDevice, int64(id)),
			Kind:   domain.NodeDevice,
			Label:  dev.Name,
			Tenant: deviceTenant(id),
		})
	}
	for _, id := range snap.InterfaceIDs() {
		iface := snap.Interfaces[id]
		g.AddNode(domain.Node{
			ID:     domain.NodeRef(domain.NodeInterface, int64(id)),
			Kind:   domain.NodeInterface,
			Label:  nodeLabel(snap, iface.Device, iface.Name),
			Tenant: deviceTenant(iface.Device),
		})
	}
	for _, id := range snap.FrontPortIDs() {
		fp := snap.FrontPorts[id]
		g.AddNode(domain.Node{
			ID:     domain.NodeRef(domain.NodeFrontPort, int64(id)),
			Kind:   domain.NodeFrontPort,
			Label:  nodeLabel(snap, fp.Device, fp.Name),
			Tenant: deviceTenant(fp.Device),
		})
	}
	for _, id := range snap.RearPortIDs() {
		rp := snap.RearPorts[id]
		g.AddNode(domain.Node{
			ID:     domain.NodeRef(domain.NodeRearPort, int64(id)),
			Kind:   domain.NodeRearPort,
			Label:  nodeLabel(snap, rp.Device, rp.Name),
			Tenant: deviceTenant(rp.Device),
		})
	}
	for _, id := range snap.VLANIDs() {
		vlan := snap.VLANs[id]
		g.AddNode(domain.Node{
			ID:    domain.NodeRef(domain.NodeVLAN, int64(id)),
			Kind:  domain.NodeVLAN,
			Label: fmt.Sprintf("%s (%d)", vlan.Name, vlan.VID),
		})
	}
	for _, id := range snap.L2VPNIDs() {
		g.AddNode(domain.Node{
			ID:    domain.NodeRef(domain.NodeL2VPN, int64(id)),
			Kind:  domain.NodeL2VPN,
			Label: snap.L2VPNs[id].Name,
		})
	}
	for _, id := range snap.WirelessLANIDs() {
		g.AddNode(domain.Node{
			ID:    domain.NodeRef(domain.NodeWirelessLAN, int64(id)),
			Kind:  domain.NodeWirelessLAN,
			Label: snap.WirelessLANs[id].SSID,
		})
	}
	return g
}

// nodeLabel qualifies a port or interface name with its device name.
func nodeLabel(snap *domain.Snapshot, dev domain.DeviceID, name string) string {
	if d, ok := snap.Devices[dev]; ok && d.Name != "" {
		return d.Name + ":" + name
	}
	return name
}

// tenantLabel renders a tenant annotation, preferring the slug.
func tenantLabel(snap *domain.Snapshot, id domain.TenantID) string {
	if id == 0 {
		return ""
	}
	t, ok := snap.Tenants[id]
	if !ok {
		return ""
	}
	if t.Slug != "" {
		return t.Slug
	}
	return t.Name
}
