package topology

import (
	"fmt"

	"netfabric/internal/domain"
)

// BuildLogicalOverlay derives the non-physical adjacency layer: VLAN
// membership, bridge groupings, virtual-network meshes and wireless
// associations. Edges reference entities by node identifier; edges toward
// entities missing from the snapshot are skipped, since those references
// are already reported as unresolved.
func BuildLogicalOverlay(snap *domain.Snapshot) []domain.Edge {
	var edges []domain.Edge
	edges = append(edges, vlanEdges(snap)...)
	edges = append(edges, bridgeEdges(snap)...)
	edges = append(edges, l2vpnEdges(snap)...)
	edges = append(edges, wirelessEdges(snap)...)
	return edges
}

// vlanEdges connects each interface to its untagged VLAN and to every
// tagged VLAN, with distinct edge kinds per membership mode.
func vlanEdges(snap *domain.Snapshot) []domain.Edge {
	var edges []domain.Edge
	for _, id := range snap.InterfaceIDs() {
		iface := snap.Interfaces[id]
		from := domain.NodeRef(domain.NodeInterface, int64(id))
		origin := []string{fmt.Sprintf("interface:%d", id)}

		if iface.UntaggedVLAN != 0 {
			if _, ok := snap.VLANs[iface.UntaggedVLAN]; ok {
				to := domain.NodeRef(domain.NodeVLAN, int64(iface.UntaggedVLAN))
				edges = append(edges, domain.NewEdge(domain.EdgeVLANUntagged, from, to, origin))
			}
		}
		for _, vid := range iface.TaggedVLANs {
			if _, ok := snap.VLANs[vid]; !ok {
				continue
			}
			to := domain.NodeRef(domain.NodeVLAN, int64(vid))
			edges = append(edges, domain.NewEdge(domain.EdgeVLANTagged, from, to, origin))
		}
	}
	return edges
}

// bridgeEdges forms a star around each bridge interface: every member
// connects to the bridge, members do not connect to each other.
func bridgeEdges(snap *domain.Snapshot) []domain.Edge {
	var edges []domain.Edge
	for _, id := range snap.InterfaceIDs() {
		iface := snap.Interfaces[id]
		if iface.Bridge == 0 {
			continue
		}
		if _, ok := snap.Interfaces[iface.Bridge]; !ok {
			continue
		}
		from := domain.NodeRef(domain.NodeInterface, int64(id))
		to := domain.NodeRef(domain.NodeInterface, int64(iface.Bridge))
		origin := []string{fmt.Sprintf("interface:%d", id)}
		edges = append(edges, domain.NewEdge(domain.EdgeBridge, from, to, origin))
	}
	return edges
}

// l2vpnEdges meshes every pair of a virtual network's terminations,
// independent of the physical path between them.
func l2vpnEdges(snap *domain.Snapshot) []domain.Edge {
	var edges []domain.Edge
	for _, id := range snap.L2VPNIDs() {
		vpn := snap.L2VPNs[id]
		origin := []string{fmt.Sprintf("l2vpn:%d", id)}

		var refs []string
		for _, t := range vpn.Terminations {
			switch t.Kind {
			case domain.AttachInterface:
				if _, ok := snap.Interfaces[domain.InterfaceID(t.ID)]; ok {
					refs = append(refs, domain.NodeRef(domain.NodeInterface, t.ID))
				}
			case domain.AttachVLAN:
				if _, ok := snap.VLANs[domain.VLANID(t.ID)]; ok {
					refs = append(refs, domain.NodeRef(domain.NodeVLAN, t.ID))
				}
			}
		}
		for i := 0; i < len(refs); i++ {
			for j := i + 1; j < len(refs); j++ {
				edges = append(edges, domain.NewEdge(domain.EdgeL2VPN, refs[i], refs[j], origin))
			}
		}
	}
	return edges
}

// wirelessEdges associates each wireless LAN with its VLAN and with the
// radio interfaces announcing it.
func wirelessEdges(snap *domain.Snapshot) []domain.Edge {
	var edges []domain.Edge
	for _, id := range snap.WirelessLANIDs() {
		wlan := snap.WirelessLANs[id]
		if wlan.VLAN == 0 {
			continue
		}
		if _, ok := snap.VLANs[wlan.VLAN]; !ok {
			continue
		}
		from := domain.NodeRef(domain.NodeWirelessLAN, int64(id))
		to := domain.NodeRef(domain.NodeVLAN, int64(wlan.VLAN))
		origin := []string{fmt.Sprintf("wireless_lan:%d", id)}
		edges = append(edges, domain.NewEdge(domain.EdgeWireless, from, to, origin))
	}

	for _, id := range snap.InterfaceIDs() {
		iface := snap.Interfaces[id]
		for _, wid := range iface.WirelessLANs {
			if _, ok := snap.WirelessLANs[wid]; !ok {
				continue
			}
			from := domain.NodeRef(domain.NodeWirelessLAN, int64(wid))
			to := domain.NodeRef(domain.NodeInterface, int64(id))
			origin := []string{fmt.Sprintf("interface:%d", id)}
			edges = append(edges, domain.NewEdge(domain.EdgeWireless, from, to, origin))
		}
	}
	return edges
}
