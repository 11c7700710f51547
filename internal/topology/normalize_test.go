package topology

import (
	"testing"

	"netfabric/internal/domain"
	"netfabric/internal/netbox"
)

func hasDiagnostic(diags []domain.Diagnostic, record string, id int64) bool {
	for _, d := range diags {
		if d.Record == record && d.ID == id {
			return true
		}
	}
	return false
}

func TestNormalizeRejectsBadRecords(t *testing.T) {
	raw := &netbox.Snapshot{
		Devices: []netbox.Device{
			{ID: 1, Name: "sw1"},
			{ID: 1, Name: "sw1-again"},
			{Name: "anonymous"},
		},
		Interfaces: []netbox.Interface{
			{ID: 10, Name: "eth0", Device: &netbox.Ref{ID: 1}},
			{ID: 11, Name: "br0", Device: &netbox.Ref{ID: 1}, Bridge: &netbox.Ref{ID: 11}},
		},
		Cables: []netbox.Cable{
			{
				ID:            100,
				ATerminations: []netbox.Termination{{ObjectType: netbox.ObjectTypeInterface, ObjectID: 10}},
				BTerminations: []netbox.Termination{
					{ObjectType: netbox.ObjectTypeInterface, ObjectID: 10},
					{ObjectType: netbox.ObjectTypeInterface, ObjectID: 11},
				},
			},
			{
				ID:            101,
				ATerminations: []netbox.Termination{{ObjectType: "dcim.powerport", ObjectID: 5}},
				BTerminations: []netbox.Termination{{ObjectType: netbox.ObjectTypeInterface, ObjectID: 10}},
			},
		},
	}

	snap, diags := Normalize(raw)

	if len(snap.Devices) != 1 {
		t.Errorf("kept %d devices, want 1", len(snap.Devices))
	}
	if !hasDiagnostic(diags, "device", 1) {
		t.Error("missing duplicate-device diagnostic")
	}
	if !hasDiagnostic(diags, "device", 0) {
		t.Error("missing zero-identifier diagnostic")
	}
	if _, ok := snap.Interfaces[11]; ok {
		t.Error("self-referencing bridge was not rejected")
	}
	if !hasDiagnostic(diags, "interface", 11) {
		t.Error("missing self-bridge diagnostic")
	}
	if len(snap.Cables) != 0 {
		t.Errorf("kept %d cables, want 0", len(snap.Cables))
	}
	if !hasDiagnostic(diags, "cable", 100) {
		t.Error("missing termination-cardinality diagnostic")
	}
	if !hasDiagnostic(diags, "cable", 101) {
		t.Error("missing unknown-termination-type diagnostic")
	}
}

func TestNormalizeMarksDanglingRefs(t *testing.T) {
	raw := &netbox.Snapshot{
		Devices: []netbox.Device{
			{ID: 1, Name: "sw1", Tenant: &netbox.Ref{ID: 99}},
		},
		Interfaces: []netbox.Interface{
			{ID: 10, Name: "eth0", Device: &netbox.Ref{ID: 1}, UntaggedVLAN: &netbox.Ref{ID: 500}},
			{ID: 11, Name: "eth1", Device: &netbox.Ref{ID: 2}},
		},
	}

	snap, _ := Normalize(raw)

	for _, ref := range []struct {
		kind string
		id   int64
	}{
		{"tenant", 99},
		{"vlan", 500},
		{"device", 2},
	} {
		if !snap.IsMissing(ref.kind, ref.id) {
			t.Errorf("%s %d not marked missing", ref.kind, ref.id)
		}
	}
	// The records carrying dangling refs are still kept.
	if _, ok := snap.Interfaces[10]; !ok {
		t.Error("interface with dangling VLAN ref was dropped")
	}
	if _, ok := snap.Interfaces[11]; !ok {
		t.Error("interface with dangling device ref was dropped")
	}
}

func TestNormalizeAttachesAddresses(t *testing.T) {
	raw := &netbox.Snapshot{
		Devices: []netbox.Device{
			{ID: 1, Name: "sw1", PrimaryIP4: &netbox.AddrRef{ID: 1, Address: "10.0.0.1/24"}},
		},
		Interfaces: []netbox.Interface{
			{ID: 10, Name: "eth0", Device: &netbox.Ref{ID: 1}},
		},
		IPAddresses: []netbox.IPAddress{
			{ID: 200, Address: "10.0.0.1/24", AssignedObjectType: netbox.ObjectTypeInterface, AssignedObjectID: 10},
			{ID: 201, Address: "not-an-address"},
		},
	}

	snap, diags := Normalize(raw)

	dev := snap.Devices[1]
	if got := dev.PrimaryIP4.String(); got != "10.0.0.1" {
		t.Errorf("primary IP = %s, want 10.0.0.1", got)
	}
	iface := snap.Interfaces[10]
	if len(iface.IPs) != 1 || iface.IPs[0].String() != "10.0.0.1/24" {
		t.Errorf("interface IPs = %v, want [10.0.0.1/24]", iface.IPs)
	}
	if !hasDiagnostic(diags, "ip_address", 201) {
		t.Error("missing invalid-address diagnostic")
	}
	if _, ok := snap.IPAddresses[201]; ok {
		t.Error("invalid address record was kept")
	}
}

func TestNormalizeL2VPNTerminations(t *testing.T) {
	raw := &netbox.Snapshot{
		Interfaces: []netbox.Interface{{ID: 10, Name: "eth0"}},
		VLANs:      []netbox.VLAN{{ID: 500, Name: "v10", VID: 10}},
		L2VPNs: []netbox.L2VPN{
			{
				ID:   300,
				Name: "cust-a",
				Terminations: []netbox.L2VPNTermination{
					{ID: 1, AssignedObjectType: netbox.ObjectTypeInterface, AssignedObjectID: 10},
					{ID: 2, AssignedObjectType: netbox.ObjectTypeVLAN, AssignedObjectID: 500},
					{ID: 3, AssignedObjectType: "dcim.device", AssignedObjectID: 1},
				},
			},
		},
	}

	snap, diags := Normalize(raw)

	vpn := snap.L2VPNs[300]
	if vpn == nil {
		t.Fatal("l2vpn not normalized")
	}
	if len(vpn.Terminations) != 2 {
		t.Fatalf("terminations = %v, want the interface and VLAN assignments", vpn.Terminations)
	}
	if vpn.Terminations[0].Kind != domain.AttachInterface || vpn.Terminations[0].ID != 10 {
		t.Errorf("termination 0 = %s", vpn.Terminations[0])
	}
	if vpn.Terminations[1].Kind != domain.AttachVLAN || vpn.Terminations[1].ID != 500 {
		t.Errorf("termination 1 = %s", vpn.Terminations[1])
	}
	if !hasDiagnostic(diags, "l2vpn_termination", 3) {
		t.Error("missing unsupported-assignment diagnostic")
	}
}

func TestNormalizeExtractsLocationsAndSites(t *testing.T) {
	raw := &netbox.Snapshot{
		Tenants: []netbox.Tenant{{ID: 7, Name: "Acme", Slug: "acme"}},
		Devices: []netbox.Device{
			{ID: 1, Name: "sw1", Site: &netbox.ScopedRef{ID: 3, Name: "dc1", Tenant: &netbox.Ref{ID: 7}}},
			{ID: 2, Name: "sw2", Site: &netbox.ScopedRef{ID: 3, Name: "dc1"}},
		},
	}

	snap, _ := Normalize(raw)

	site, ok := snap.Sites[3]
	if !ok {
		t.Fatal("site not extracted from device records")
	}
	if site.Tenant != 7 {
		t.Errorf("site tenant = %d, want 7 (first complete variant wins)", site.Tenant)
	}
}
