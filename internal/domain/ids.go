package domain

import "fmt"

// Typed numeric identifiers, as assigned by the source-of-truth system.
// Zero means "not set" for optional references.
type (
	DeviceID           int64
	InterfaceID        int64
	FrontPortID        int64
	RearPortID         int64
	CableID            int64
	VLANID             int64
	VLANGroupID        int64
	L2VPNID            int64
	WirelessLANID      int64
	WirelessLANGroupID int64
	TenantID           int64
	LocationID         int64
	SiteID             int64
	IPAddressID        int64
	PrefixID           int64
	IPRangeID          int64
)

// PortKind discriminates the closed set of cable termination variants.
type PortKind string

const (
	PortInterface PortKind = "interface"
	PortFront     PortKind = "front_port"
	PortRear      PortKind = "rear_port"
)

// CablePort is one end of a cable, resolved to a typed entity reference.
// The zero value means "no termination".
type CablePort struct {
	Kind PortKind `json:"kind"`
	ID   int64    `json:"id"`
}

func InterfacePort(id InterfaceID) CablePort { return CablePort{Kind: PortInterface, ID: int64(id)} }
func FrontPortRef(id FrontPortID) CablePort  { return CablePort{Kind: PortFront, ID: int64(id)} }
func RearPortRef(id RearPortID) CablePort    { return CablePort{Kind: PortRear, ID: int64(id)} }

// IsZero reports whether the port reference is unset.
func (p CablePort) IsZero() bool {
	return p.Kind == "" && p.ID == 0
}

func (p CablePort) String() string {
	return fmt.Sprintf("%s:%d", p.Kind, p.ID)
}

// AttachmentKind discriminates the closed set of L2VPN assignment variants.
type AttachmentKind string

const (
	AttachInterface AttachmentKind = "interface"
	AttachVLAN      AttachmentKind = "vlan"
)

// L2VPNTermination is a single participant of a virtual private network,
// assigned to either an interface or a VLAN.
type L2VPNTermination struct {
	Kind AttachmentKind `json:"kind"`
	ID   int64          `json:"id"`
}

func (t L2VPNTermination) String() string {
	return fmt.Sprintf("%s:%d", t.Kind, t.ID)
}

// NodeKind identifies the entity type behind a graph node.
type NodeKind string

const (
	NodeDevice      NodeKind = "device"
	NodeInterface   NodeKind = "interface"
	NodeFrontPort   NodeKind = "front_port"
	NodeRearPort    NodeKind = "rear_port"
	NodeVLAN        NodeKind = "vlan"
	NodeL2VPN       NodeKind = "l2vpn"
	NodeWirelessLAN NodeKind = "wireless_lan"
)

// NodeRef is a stable, kind-qualified node identifier such as "device:12".
func NodeRef(kind NodeKind, id int64) string {
	return fmt.Sprintf("%s:%d", kind, id)
}
