package netbox

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// FetchSnapshot materializes the complete record set for one resolution
// run. Independent record types are fetched with bounded parallelism; any
// failure aborts the whole fetch, since the engine never resolves a partial
// snapshot.
func (c *Client) FetchSnapshot(ctx context.Context, parallelism int) (*Snapshot, error) {
	if parallelism <= 0 {
		parallelism = 4
	}

	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	collect(g, ctx, c, pathDevices, &snap.Devices)
	collect(g, ctx, c, pathInterfaces, &snap.Interfaces)
	collect(g, ctx, c, pathFrontPorts, &snap.FrontPorts)
	collect(g, ctx, c, pathRearPorts, &snap.RearPorts)
	collect(g, ctx, c, pathCables, &snap.Cables)
	collect(g, ctx, c, pathVLANs, &snap.VLANs)
	collect(g, ctx, c, pathVLANGroups, &snap.VLANGroups)
	collect(g, ctx, c, pathL2VPNs, &snap.L2VPNs)
	collect(g, ctx, c, pathWirelessLANs, &snap.WirelessLANs)
	collect(g, ctx, c, pathWirelessLANGroups, &snap.WirelessLANGroups)
	collect(g, ctx, c, pathTenants, &snap.Tenants)
	collect(g, ctx, c, pathIPAddresses, &snap.IPAddresses)
	collect(g, ctx, c, pathPrefixes, &snap.Prefixes)
	collect(g, ctx, c, pathIPRanges, &snap.IPRanges)

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	return snap, nil
}

// collect schedules one record type. Each goroutine writes only its own
// destination slice.
func collect[T any](g *errgroup.Group, ctx context.Context, c *Client, path string, dst *[]T) {
	g.Go(func() error {
		records, err := fetchList[T](ctx, c, path)
		if err != nil {
			return err
		}
		*dst = records
		return nil
	})
}
