package domain

import (
	"fmt"
	"sort"
)

// Snapshot holds the normalized entities of one resolution run, keyed by
// their stable identifiers, together with the traversal indexes derived
// from them. It is immutable once normalization finishes.
type Snapshot struct {
	Devices           map[DeviceID]*Device
	Interfaces        map[InterfaceID]*Interface
	FrontPorts        map[FrontPortID]*FrontPort
	RearPorts         map[RearPortID]*RearPort
	Cables            map[CableID]*Cable
	VLANs             map[VLANID]*VLAN
	VLANGroups        map[VLANGroupID]*VLANGroup
	L2VPNs            map[L2VPNID]*L2VPN
	WirelessLANs      map[WirelessLANID]*WirelessLAN
	WirelessLANGroups map[WirelessLANGroupID]*WirelessLANGroup
	Tenants           map[TenantID]*Tenant
	Locations         map[LocationID]*Location
	Sites             map[SiteID]*Site
	IPAddresses       map[IPAddressID]*IPAddress
	Prefixes          map[PrefixID]*Prefix
	IPRanges          map[IPRangeID]*IPRange

	cablesByPort map[CablePort][]CableID
	frontsByRear map[RearPortID][]FrontPortID
	missing      map[string]struct{}
}

// NewSnapshot returns an empty snapshot with initialized collections.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Devices:           make(map[DeviceID]*Device),
		Interfaces:        make(map[InterfaceID]*Interface),
		FrontPorts:        make(map[FrontPortID]*FrontPort),
		RearPorts:         make(map[RearPortID]*RearPort),
		Cables:            make(map[CableID]*Cable),
		VLANs:             make(map[VLANID]*VLAN),
		VLANGroups:        make(map[VLANGroupID]*VLANGroup),
		L2VPNs:            make(map[L2VPNID]*L2VPN),
		WirelessLANs:      make(map[WirelessLANID]*WirelessLAN),
		WirelessLANGroups: make(map[WirelessLANGroupID]*WirelessLANGroup),
		Tenants:           make(map[TenantID]*Tenant),
		Locations:         make(map[LocationID]*Location),
		Sites:             make(map[SiteID]*Site),
		IPAddresses:       make(map[IPAddressID]*IPAddress),
		Prefixes:          make(map[PrefixID]*Prefix),
		IPRanges:          make(map[IPRangeID]*IPRange),
		cablesByPort:      make(map[CablePort][]CableID),
		frontsByRear:      make(map[RearPortID][]FrontPortID),
		missing:           make(map[string]struct{}),
	}
}

// BuildIndexes computes the traversal indexes from the entity maps. It must
// be called once, after the last entity has been added.
func (s *Snapshot) BuildIndexes() {
	s.cablesByPort = make(map[CablePort][]CableID)
	s.frontsByRear = make(map[RearPortID][]FrontPortID)

	for id, cable := range s.Cables {
		s.cablesByPort[cable.A] = append(s.cablesByPort[cable.A], id)
		s.cablesByPort[cable.B] = append(s.cablesByPort[cable.B], id)
	}
	for _, cables := range s.cablesByPort {
		sort.Slice(cables, func(i, j int) bool { return cables[i] < cables[j] })
	}

	for id, fp := range s.FrontPorts {
		if fp.RearPort != 0 {
			s.frontsByRear[fp.RearPort] = append(s.frontsByRear[fp.RearPort], id)
		}
	}
	for _, fronts := range s.frontsByRear {
		sort.Slice(fronts, func(i, j int) bool { return fronts[i] < fronts[j] })
	}
}

// CablesAt returns the cables terminating at the given port, in stable order.
func (s *Snapshot) CablesAt(p CablePort) []CableID {
	return s.cablesByPort[p]
}

// FrontPortsOf returns the front ports pairing into the given rear port, in
// stable order.
func (s *Snapshot) FrontPortsOf(id RearPortID) []FrontPortID {
	return s.frontsByRear[id]
}

// MarkMissing records a reference to an entity that was not present in the
// fetched record set. Missing references are kept distinct from "genuinely
// absent" optional fields so consumers can flag incomplete data.
func (s *Snapshot) MarkMissing(kind string, id int64) {
	s.missing[fmt.Sprintf("%s:%d", kind, id)] = struct{}{}
}

// IsMissing reports whether kind:id was referenced but never fetched.
func (s *Snapshot) IsMissing(kind string, id int64) bool {
	_, ok := s.missing[fmt.Sprintf("%s:%d", kind, id)]
	return ok
}

// MissingRefs lists every dangling reference found during normalization,
// sorted for deterministic output.
func (s *Snapshot) MissingRefs() []string {
	refs := make([]string, 0, len(s.missing))
	for ref := range s.missing {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// DeviceIDs returns all device identifiers in ascending order.
func (s *Snapshot) DeviceIDs() []DeviceID {
	ids := make([]DeviceID, 0, len(s.Devices))
	for id := range s.Devices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// InterfaceIDs returns all interface identifiers in ascending order.
func (s *Snapshot) InterfaceIDs() []InterfaceID {
	ids := make([]InterfaceID, 0, len(s.Interfaces))
	for id := range s.Interfaces {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// VLANIDs returns all VLAN identifiers in ascending order.
func (s *Snapshot) VLANIDs() []VLANID {
	ids := make([]VLANID, 0, len(s.VLANs))
	for id := range s.VLANs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// L2VPNIDs returns all L2VPN identifiers in ascending order.
func (s *Snapshot) L2VPNIDs() []L2VPNID {
	ids := make([]L2VPNID, 0, len(s.L2VPNs))
	for id := range s.L2VPNs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// WirelessLANIDs returns all wireless LAN identifiers in ascending order.
func (s *Snapshot) WirelessLANIDs() []WirelessLANID {
	ids := make([]WirelessLANID, 0, len(s.WirelessLANs))
	for id := range s.WirelessLANs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FrontPortIDs returns all front port identifiers in ascending order.
func (s *Snapshot) FrontPortIDs() []FrontPortID {
	ids := make([]FrontPortID, 0, len(s.FrontPorts))
	for id := range s.FrontPorts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RearPortIDs returns all rear port identifiers in ascending order.
func (s *Snapshot) RearPortIDs() []RearPortID {
	ids := make([]RearPortID, 0, len(s.RearPorts))
	for id := range s.RearPorts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CableIDs returns all cable identifiers in ascending order.
func (s *Snapshot) CableIDs() []CableID {
	ids := make([]CableID, 0, len(s.Cables))
	for id := range s.Cables {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
