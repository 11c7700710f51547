package domain

import "net/netip"

// Device is a piece of hardware tracked by the source of truth.
// The effective owning tenant is derived by the tenant resolver, never
// stored here.
type Device struct {
	ID           DeviceID       `json:"id"`
	Name         string         `json:"name"`
	Role         string         `json:"role,omitempty"`
	Platform     string         `json:"platform,omitempty"`
	Serial       string         `json:"serial,omitempty"`
	PrimaryIP4   netip.Addr     `json:"primary_ip4,omitempty"`
	PrimaryIP6   netip.Addr     `json:"primary_ip6,omitempty"`
	CustomFields map[string]any `json:"custom_fields,omitempty"`
	Tenant       TenantID       `json:"tenant,omitempty"`
	Location     LocationID     `json:"location,omitempty"`
	Site         SiteID         `json:"site,omitempty"`
}

// Interface is a logical or physical network interface on a device.
type Interface struct {
	ID           InterfaceID     `json:"id"`
	Name         string          `json:"name"`
	Label        string          `json:"label,omitempty"`
	Enabled      bool            `json:"enabled"`
	Type         string          `json:"type,omitempty"`
	Device       DeviceID        `json:"device"`
	Bridge       InterfaceID     `json:"bridge,omitempty"`
	Tags         []string        `json:"tags,omitempty"`
	UntaggedVLAN VLANID          `json:"untagged_vlan,omitempty"`
	TaggedVLANs  []VLANID        `json:"tagged_vlans,omitempty"`
	IPs          []netip.Prefix  `json:"ips,omitempty"`
	WirelessLANs []WirelessLANID `json:"wireless_lans,omitempty"`
}

// FrontPort is the patch-panel-facing side of a pass-through pairing.
// It references at most one rear port.
type FrontPort struct {
	ID       FrontPortID `json:"id"`
	Name     string      `json:"name"`
	Device   DeviceID    `json:"device"`
	RearPort RearPortID  `json:"rear_port,omitempty"`
}

// RearPort is the far side of a pass-through pairing. Several front ports
// may pair to the same rear port (fan-out).
type RearPort struct {
	ID        RearPortID `json:"id"`
	Name      string     `json:"name"`
	Device    DeviceID   `json:"device"`
	Positions int        `json:"positions,omitempty"`
}

// Cable joins exactly two terminations, A and B.
type Cable struct {
	ID CableID   `json:"id"`
	A  CablePort `json:"a"`
	B  CablePort `json:"b"`
}

// Other returns the termination opposite to the given one, and whether the
// given port actually terminates this cable.
func (c *Cable) Other(p CablePort) (CablePort, bool) {
	switch p {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return CablePort{}, false
}

// VLAN is a layer-2 broadcast domain, optionally namespaced by a group.
type VLAN struct {
	ID    VLANID      `json:"id"`
	Name  string      `json:"name"`
	VID   int         `json:"vid"`
	Group VLANGroupID `json:"group,omitempty"`
}

// VLANGroup scopes VLAN numbering.
type VLANGroup struct {
	ID   VLANGroupID `json:"id"`
	Name string      `json:"name"`
	Slug string      `json:"slug,omitempty"`
}

// L2VPN is a virtual private network with interface- or VLAN-assigned
// terminations.
type L2VPN struct {
	ID           L2VPNID            `json:"id"`
	Name         string             `json:"name"`
	Type         string             `json:"type,omitempty"`
	Identifier   int64              `json:"identifier,omitempty"`
	Terminations []L2VPNTermination `json:"terminations,omitempty"`
}

// WirelessLAN is an SSID, optionally mapped onto a VLAN.
type WirelessLAN struct {
	ID       WirelessLANID      `json:"id"`
	SSID     string             `json:"ssid"`
	AuthType string             `json:"auth_type,omitempty"`
	AuthKey  string             `json:"auth_key,omitempty"`
	VLAN     VLANID             `json:"vlan,omitempty"`
	Group    WirelessLANGroupID `json:"group,omitempty"`
}

// WirelessLANGroup bundles wireless networks served by one controller.
type WirelessLANGroup struct {
	ID   WirelessLANGroupID `json:"id"`
	Name string             `json:"name"`
}

// Tenant owns devices, directly or through locations and sites.
type Tenant struct {
	ID           TenantID       `json:"id"`
	Name         string         `json:"name"`
	Slug         string         `json:"slug,omitempty"`
	CustomFields map[string]any `json:"custom_fields,omitempty"`
}

// Location is a sub-site grouping that may carry its own tenant.
type Location struct {
	ID     LocationID `json:"id"`
	Name   string     `json:"name"`
	Tenant TenantID   `json:"tenant,omitempty"`
}

// Site is a physical site that may carry its own tenant.
type Site struct {
	ID     SiteID   `json:"id"`
	Name   string   `json:"name"`
	Tenant TenantID `json:"tenant,omitempty"`
}

// IPAddress is a single address, optionally assigned to an interface.
type IPAddress struct {
	ID        IPAddressID  `json:"id"`
	Address   netip.Prefix `json:"address"`
	Role      string       `json:"role,omitempty"`
	Interface InterfaceID  `json:"interface,omitempty"`
}

// Prefix is an allocated network prefix.
type Prefix struct {
	ID     PrefixID     `json:"id"`
	Prefix netip.Prefix `json:"prefix"`
	Role   string       `json:"role,omitempty"`
}

// IPRange is a contiguous address range.
type IPRange struct {
	ID    IPRangeID  `json:"id"`
	Start netip.Addr `json:"start"`
	End   netip.Addr `json:"end"`
	Role  string     `json:"role,omitempty"`
}
