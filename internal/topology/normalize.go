package topology

import (
	"fmt"
	"net/netip"
	"strings"

	"netfabric/internal/domain"
	"netfabric/internal/netbox"
)

// Normalize converts the raw record set into typed entities keyed by their
// stable identifiers. Records missing a required identifier, duplicated, or
// violating a cardinality invariant are rejected with a per-record
// diagnostic; the rest of the run continues. References to records absent
// from the fetched set are retained as unresolved-reference markers on the
// snapshot rather than dropped.
func Normalize(raw *netbox.Snapshot) (*domain.Snapshot, []domain.Diagnostic) {
	n := &normalizer{snap: domain.NewSnapshot()}

	n.tenants(raw.Tenants)
	n.vlanGroups(raw.VLANGroups)
	n.vlans(raw.VLANs)
	n.wirelessGroups(raw.WirelessLANGroups)
	n.wirelessLANs(raw.WirelessLANs)
	n.devices(raw.Devices)
	n.interfaces(raw.Interfaces)
	n.frontPorts(raw.FrontPorts)
	n.rearPorts(raw.RearPorts)
	n.cables(raw.Cables)
	n.l2vpns(raw.L2VPNs)
	n.ipAddresses(raw.IPAddresses)
	n.prefixes(raw.Prefixes)
	n.ipRanges(raw.IPRanges)

	n.markDangling()
	n.snap.BuildIndexes()

	return n.snap, n.diags
}

type normalizer struct {
	snap  *domain.Snapshot
	diags []domain.Diagnostic
}

func (n *normalizer) reject(record string, id int64, reason string) {
	n.diags = append(n.diags, domain.Diagnostic{Record: record, ID: id, Reason: reason})
}

func (n *normalizer) tenants(records []netbox.Tenant) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("tenant", 0, "missing identifier")
			continue
		}
		id := domain.TenantID(r.ID)
		if _, ok := n.snap.Tenants[id]; ok {
			n.reject("tenant", r.ID, "duplicate identifier")
			continue
		}
		n.snap.Tenants[id] = &domain.Tenant{
			ID:           id,
			Name:         r.Name,
			Slug:         r.Slug,
			CustomFields: r.CustomFields,
		}
	}
}

func (n *normalizer) vlanGroups(records []netbox.VLANGroup) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("vlan_group", 0, "missing identifier")
			continue
		}
		id := domain.VLANGroupID(r.ID)
		if _, ok := n.snap.VLANGroups[id]; ok {
			n.reject("vlan_group", r.ID, "duplicate identifier")
			continue
		}
		n.snap.VLANGroups[id] = &domain.VLANGroup{ID: id, Name: r.Name, Slug: r.Slug}
	}
}

func (n *normalizer) vlans(records []netbox.VLAN) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("vlan", 0, "missing identifier")
			continue
		}
		id := domain.VLANID(r.ID)
		if _, ok := n.snap.VLANs[id]; ok {
			n.reject("vlan", r.ID, "duplicate identifier")
			continue
		}
		vlan := &domain.VLAN{ID: id, Name: r.Name, VID: r.VID}
		if r.Group != nil {
			vlan.Group = domain.VLANGroupID(r.Group.ID)
		}
		n.snap.VLANs[id] = vlan
	}
}

func (n *normalizer) wirelessGroups(records []netbox.WirelessLANGroup) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("wireless_lan_group", 0, "missing identifier")
			continue
		}
		id := domain.WirelessLANGroupID(r.ID)
		if _, ok := n.snap.WirelessLANGroups[id]; ok {
			n.reject("wireless_lan_group", r.ID, "duplicate identifier")
			continue
		}
		n.snap.WirelessLANGroups[id] = &domain.WirelessLANGroup{ID: id, Name: r.Name}
	}
}

func (n *normalizer) wirelessLANs(records []netbox.WirelessLAN) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("wireless_lan", 0, "missing identifier")
			continue
		}
		id := domain.WirelessLANID(r.ID)
		if _, ok := n.snap.WirelessLANs[id]; ok {
			n.reject("wireless_lan", r.ID, "duplicate identifier")
			continue
		}
		wlan := &domain.WirelessLAN{
			ID:       id,
			SSID:     r.SSID,
			AuthType: r.AuthType,
			AuthKey:  r.AuthPSK,
		}
		if r.VLAN != nil {
			wlan.VLAN = domain.VLANID(r.VLAN.ID)
		}
		if r.Group != nil {
			wlan.Group = domain.WirelessLANGroupID(r.Group.ID)
		}
		n.snap.WirelessLANs[id] = wlan
	}
}

func (n *normalizer) devices(records []netbox.Device) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("device", 0, "missing identifier")
			continue
		}
		id := domain.DeviceID(r.ID)
		if _, ok := n.snap.Devices[id]; ok {
			n.reject("device", r.ID, "duplicate identifier")
			continue
		}
		dev := &domain.Device{
			ID:           id,
			Name:         r.Name,
			Serial:       r.Serial,
			CustomFields: r.CustomFields,
		}
		if r.Role != nil {
			dev.Role = r.Role.Name
		}
		if r.Platform != nil {
			dev.Platform = r.Platform.Name
		}
		if r.PrimaryIP4 != nil {
			dev.PrimaryIP4 = parseAddr(r.PrimaryIP4.Address)
		}
		if r.PrimaryIP6 != nil {
			dev.PrimaryIP6 = parseAddr(r.PrimaryIP6.Address)
		}
		if r.Tenant != nil {
			dev.Tenant = domain.TenantID(r.Tenant.ID)
		}
		if r.Location != nil {
			dev.Location = domain.LocationID(r.Location.ID)
			n.mergeLocation(r.Location)
		}
		if r.Site != nil {
			dev.Site = domain.SiteID(r.Site.ID)
			n.mergeSite(r.Site)
		}
		n.snap.Devices[id] = dev
	}
}

// Locations and sites only appear embedded in device records; merging keeps
// the first complete variant seen.
func (n *normalizer) mergeLocation(r *netbox.ScopedRef) {
	id := domain.LocationID(r.ID)
	if existing, ok := n.snap.Locations[id]; ok {
		if existing.Tenant == 0 && r.Tenant != nil {
			existing.Tenant = domain.TenantID(r.Tenant.ID)
		}
		return
	}
	loc := &domain.Location{ID: id, Name: r.Name}
	if r.Tenant != nil {
		loc.Tenant = domain.TenantID(r.Tenant.ID)
	}
	n.snap.Locations[id] = loc
}

func (n *normalizer) mergeSite(r *netbox.ScopedRef) {
	id := domain.SiteID(r.ID)
	if existing, ok := n.snap.Sites[id]; ok {
		if existing.Tenant == 0 && r.Tenant != nil {
			existing.Tenant = domain.TenantID(r.Tenant.ID)
		}
		return
	}
	site := &domain.Site{ID: id, Name: r.Name}
	if r.Tenant != nil {
		site.Tenant = domain.TenantID(r.Tenant.ID)
	}
	n.snap.Sites[id] = site
}

func (n *normalizer) interfaces(records []netbox.Interface) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("interface", 0, "missing identifier")
			continue
		}
		id := domain.InterfaceID(r.ID)
		if _, ok := n.snap.Interfaces[id]; ok {
			n.reject("interface", r.ID, "duplicate identifier")
			continue
		}
		if r.Bridge != nil && r.Bridge.ID == r.ID {
			n.reject("interface", r.ID, "bridge references itself")
			continue
		}
		iface := &domain.Interface{
			ID:      id,
			Name:    r.Name,
			Label:   r.Label,
			Enabled: r.Enabled,
		}
		if r.Type != nil {
			iface.Type = r.Type.Value
		}
		if r.Device != nil {
			iface.Device = domain.DeviceID(r.Device.ID)
		}
		if r.Bridge != nil {
			iface.Bridge = domain.InterfaceID(r.Bridge.ID)
		}
		for _, tag := range r.Tags {
			iface.Tags = append(iface.Tags, tag.Name)
		}
		if r.UntaggedVLAN != nil {
			iface.UntaggedVLAN = domain.VLANID(r.UntaggedVLAN.ID)
		}
		for _, ref := range r.TaggedVLANs {
			iface.TaggedVLANs = append(iface.TaggedVLANs, domain.VLANID(ref.ID))
		}
		for _, ref := range r.WirelessLANs {
			iface.WirelessLANs = append(iface.WirelessLANs, domain.WirelessLANID(ref.ID))
		}
		n.snap.Interfaces[id] = iface
	}
}

func (n *normalizer) frontPorts(records []netbox.FrontPort) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("front_port", 0, "missing identifier")
			continue
		}
		id := domain.FrontPortID(r.ID)
		if _, ok := n.snap.FrontPorts[id]; ok {
			n.reject("front_port", r.ID, "duplicate identifier")
			continue
		}
		fp := &domain.FrontPort{ID: id, Name: r.Name}
		if r.Device != nil {
			fp.Device = domain.DeviceID(r.Device.ID)
		}
		if r.RearPort != nil {
			fp.RearPort = domain.RearPortID(r.RearPort.ID)
		}
		n.snap.FrontPorts[id] = fp
	}
}

func (n *normalizer) rearPorts(records []netbox.RearPort) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("rear_port", 0, "missing identifier")
			continue
		}
		id := domain.RearPortID(r.ID)
		if _, ok := n.snap.RearPorts[id]; ok {
			n.reject("rear_port", r.ID, "duplicate identifier")
			continue
		}
		rp := &domain.RearPort{ID: id, Name: r.Name, Positions: r.Positions}
		if r.Device != nil {
			rp.Device = domain.DeviceID(r.Device.ID)
		}
		n.snap.RearPorts[id] = rp
	}
}

func (n *normalizer) cables(records []netbox.Cable) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("cable", 0, "missing identifier")
			continue
		}
		id := domain.CableID(r.ID)
		if _, ok := n.snap.Cables[id]; ok {
			n.reject("cable", r.ID, "duplicate identifier")
			continue
		}
		if len(r.ATerminations) != 1 || len(r.BTerminations) != 1 {
			n.reject("cable", r.ID, fmt.Sprintf("expected exactly one termination per side, got %d/%d",
				len(r.ATerminations), len(r.BTerminations)))
			continue
		}
		a, err := cablePort(r.ATerminations[0])
		if err != nil {
			n.reject("cable", r.ID, fmt.Sprintf("side A: %v", err))
			continue
		}
		b, err := cablePort(r.BTerminations[0])
		if err != nil {
			n.reject("cable", r.ID, fmt.Sprintf("side B: %v", err))
			continue
		}
		n.snap.Cables[id] = &domain.Cable{ID: id, A: a, B: b}
	}
}

// cablePort resolves a polymorphic termination to the closed variant set
// {interface, front port, rear port}.
func cablePort(t netbox.Termination) (domain.CablePort, error) {
	if t.ObjectID == 0 {
		return domain.CablePort{}, fmt.Errorf("termination missing object identifier")
	}
	switch t.ObjectType {
	case netbox.ObjectTypeInterface:
		return domain.InterfacePort(domain.InterfaceID(t.ObjectID)), nil
	case netbox.ObjectTypeFrontPort:
		return domain.FrontPortRef(domain.FrontPortID(t.ObjectID)), nil
	case netbox.ObjectTypeRearPort:
		return domain.RearPortRef(domain.RearPortID(t.ObjectID)), nil
	default:
		return domain.CablePort{}, fmt.Errorf("unsupported termination type %q", t.ObjectType)
	}
}

func (n *normalizer) l2vpns(records []netbox.L2VPN) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("l2vpn", 0, "missing identifier")
			continue
		}
		id := domain.L2VPNID(r.ID)
		if _, ok := n.snap.L2VPNs[id]; ok {
			n.reject("l2vpn", r.ID, "duplicate identifier")
			continue
		}
		vpn := &domain.L2VPN{ID: id, Name: r.Name}
		if r.Type != nil {
			vpn.Type = r.Type.Value
		}
		if r.Identifier != nil {
			vpn.Identifier = *r.Identifier
		}
		for _, t := range r.Terminations {
			switch t.AssignedObjectType {
			case netbox.ObjectTypeInterface:
				vpn.Terminations = append(vpn.Terminations, domain.L2VPNTermination{
					Kind: domain.AttachInterface, ID: t.AssignedObjectID,
				})
			case netbox.ObjectTypeVLAN:
				vpn.Terminations = append(vpn.Terminations, domain.L2VPNTermination{
					Kind: domain.AttachVLAN, ID: t.AssignedObjectID,
				})
			default:
				n.reject("l2vpn_termination", t.ID,
					fmt.Sprintf("unsupported assignment type %q", t.AssignedObjectType))
			}
		}
		n.snap.L2VPNs[id] = vpn
	}
}

func (n *normalizer) ipAddresses(records []netbox.IPAddress) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("ip_address", 0, "missing identifier")
			continue
		}
		id := domain.IPAddressID(r.ID)
		if _, ok := n.snap.IPAddresses[id]; ok {
			n.reject("ip_address", r.ID, "duplicate identifier")
			continue
		}
		prefix, err := parsePrefix(r.Address)
		if err != nil {
			n.reject("ip_address", r.ID, fmt.Sprintf("invalid address %q", r.Address))
			continue
		}
		addr := &domain.IPAddress{ID: id, Address: prefix}
		if r.Role != nil {
			addr.Role = r.Role.Value
		}
		if r.AssignedObjectType == netbox.ObjectTypeInterface && r.AssignedObjectID != 0 {
			addr.Interface = domain.InterfaceID(r.AssignedObjectID)
		}
		n.snap.IPAddresses[id] = addr

		if addr.Interface != 0 {
			if iface, ok := n.snap.Interfaces[addr.Interface]; ok {
				iface.IPs = append(iface.IPs, prefix)
			}
		}
	}
}

func (n *normalizer) prefixes(records []netbox.Prefix) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("prefix", 0, "missing identifier")
			continue
		}
		id := domain.PrefixID(r.ID)
		if _, ok := n.snap.Prefixes[id]; ok {
			n.reject("prefix", r.ID, "duplicate identifier")
			continue
		}
		prefix, err := netip.ParsePrefix(r.Prefix)
		if err != nil {
			n.reject("prefix", r.ID, fmt.Sprintf("invalid prefix %q", r.Prefix))
			continue
		}
		p := &domain.Prefix{ID: id, Prefix: prefix}
		if r.Role != nil {
			p.Role = r.Role.Name
		}
		n.snap.Prefixes[id] = p
	}
}

func (n *normalizer) ipRanges(records []netbox.IPRange) {
	for _, r := range records {
		if r.ID == 0 {
			n.reject("ip_range", 0, "missing identifier")
			continue
		}
		id := domain.IPRangeID(r.ID)
		if _, ok := n.snap.IPRanges[id]; ok {
			n.reject("ip_range", r.ID, "duplicate identifier")
			continue
		}
		start := parseAddr(r.StartAddress)
		end := parseAddr(r.EndAddress)
		if !start.IsValid() || !end.IsValid() {
			n.reject("ip_range", r.ID, "invalid range bounds")
			continue
		}
		rng := &domain.IPRange{ID: id, Start: start, End: end}
		if r.Role != nil {
			rng.Role = r.Role.Name
		}
		n.snap.IPRanges[id] = rng
	}
}

// markDangling walks every cross-entity reference and records the ones
// pointing outside the fetched set.
func (n *normalizer) markDangling() {
	s := n.snap

	for _, dev := range s.Devices {
		if dev.Tenant != 0 {
			if _, ok := s.Tenants[dev.Tenant]; !ok {
				s.MarkMissing("tenant", int64(dev.Tenant))
			}
		}
		if loc, ok := s.Locations[dev.Location]; ok && loc.Tenant != 0 {
			if _, tok := s.Tenants[loc.Tenant]; !tok {
				s.MarkMissing("tenant", int64(loc.Tenant))
			}
		}
		if site, ok := s.Sites[dev.Site]; ok && site.Tenant != 0 {
			if _, tok := s.Tenants[site.Tenant]; !tok {
				s.MarkMissing("tenant", int64(site.Tenant))
			}
		}
	}

	for _, iface := range s.Interfaces {
		if iface.Device != 0 {
			if _, ok := s.Devices[iface.Device]; !ok {
				s.MarkMissing("device", int64(iface.Device))
			}
		}
		if iface.Bridge != 0 {
			if _, ok := s.Interfaces[iface.Bridge]; !ok {
				s.MarkMissing("interface", int64(iface.Bridge))
			}
		}
		if iface.UntaggedVLAN != 0 {
			if _, ok := s.VLANs[iface.UntaggedVLAN]; !ok {
				s.MarkMissing("vlan", int64(iface.UntaggedVLAN))
			}
		}
		for _, id := range iface.TaggedVLANs {
			if _, ok := s.VLANs[id]; !ok {
				s.MarkMissing("vlan", int64(id))
			}
		}
		for _, id := range iface.WirelessLANs {
			if _, ok := s.WirelessLANs[id]; !ok {
				s.MarkMissing("wireless_lan", int64(id))
			}
		}
	}

	for _, fp := range s.FrontPorts {
		if fp.Device != 0 {
			if _, ok := s.Devices[fp.Device]; !ok {
				s.MarkMissing("device", int64(fp.Device))
			}
		}
		if fp.RearPort != 0 {
			if _, ok := s.RearPorts[fp.RearPort]; !ok {
				s.MarkMissing("rear_port", int64(fp.RearPort))
			}
		}
	}
	for _, rp := range s.RearPorts {
		if rp.Device != 0 {
			if _, ok := s.Devices[rp.Device]; !ok {
				s.MarkMissing("device", int64(rp.Device))
			}
		}
	}

	for _, cable := range s.Cables {
		n.markPortRef(cable.A)
		n.markPortRef(cable.B)
	}

	for _, vpn := range s.L2VPNs {
		for _, t := range vpn.Terminations {
			switch t.Kind {
			case domain.AttachInterface:
				if _, ok := s.Interfaces[domain.InterfaceID(t.ID)]; !ok {
					s.MarkMissing("interface", t.ID)
				}
			case domain.AttachVLAN:
				if _, ok := s.VLANs[domain.VLANID(t.ID)]; !ok {
					s.MarkMissing("vlan", t.ID)
				}
			}
		}
	}

	for _, wlan := range s.WirelessLANs {
		if wlan.VLAN != 0 {
			if _, ok := s.VLANs[wlan.VLAN]; !ok {
				s.MarkMissing("vlan", int64(wlan.VLAN))
			}
		}
		if wlan.Group != 0 {
			if _, ok := s.WirelessLANGroups[wlan.Group]; !ok {
				s.MarkMissing("wireless_lan_group", int64(wlan.Group))
			}
		}
	}

	for _, addr := range s.IPAddresses {
		if addr.Interface != 0 {
			if _, ok := s.Interfaces[addr.Interface]; !ok {
				s.MarkMissing("interface", int64(addr.Interface))
			}
		}
	}
}

func (n *normalizer) markPortRef(p domain.CablePort) {
	s := n.snap
	switch p.Kind {
	case domain.PortInterface:
		if _, ok := s.Interfaces[domain.InterfaceID(p.ID)]; !ok {
			s.MarkMissing("interface", p.ID)
		}
	case domain.PortFront:
		if _, ok := s.FrontPorts[domain.FrontPortID(p.ID)]; !ok {
			s.MarkMissing("front_port", p.ID)
		}
	case domain.PortRear:
		if _, ok := s.RearPorts[domain.RearPortID(p.ID)]; !ok {
			s.MarkMissing("rear_port", p.ID)
		}
	}
}

// parseAddr accepts both bare addresses and prefix notation.
func parseAddr(s string) netip.Addr {
	if s == "" {
		return netip.Addr{}
	}
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}
	}
	return addr
}

func parsePrefix(s string) (netip.Prefix, error) {
	if strings.IndexByte(s, '/') < 0 {
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return netip.Prefix{}, err
		}
		return netip.PrefixFrom(addr, addr.BitLen()), nil
	}
	return netip.ParsePrefix(s)
}
