package topology

import "netfabric/internal/domain"

// EffectiveTenant returns the tenant owning a device, checking the device
// first, then its location, then its site. A device with no tenant at any
// level reports zero.
func EffectiveTenant(snap *domain.Snapshot, dev *domain.Device) domain.TenantID {
	if dev == nil {
		return 0
	}
	if dev.Tenant != 0 {
		if _, ok := snap.Tenants[dev.Tenant]; ok {
			return dev.Tenant
		}
	}
	if loc, ok := snap.Locations[dev.Location]; ok && loc.Tenant != 0 {
		if _, tok := snap.Tenants[loc.Tenant]; tok {
			return loc.Tenant
		}
	}
	if site, ok := snap.Sites[dev.Site]; ok && site.Tenant != 0 {
		if _, tok := snap.Tenants[site.Tenant]; tok {
			return site.Tenant
		}
	}
	return 0
}

// ResolveTenants computes the effective tenant for every device in the
// snapshot. Devices without a tenant are omitted from the result.
func ResolveTenants(snap *domain.Snapshot) map[domain.DeviceID]domain.TenantID {
	out := make(map[domain.DeviceID]domain.TenantID)
	for _, id := range snap.DeviceIDs() {
		if t := EffectiveTenant(snap, snap.Devices[id]); t != 0 {
			out[id] = t
		}
	}
	return out
}
