package netbox

// Raw record shapes as returned by the source-of-truth REST API. The YAML
// tags let the same shapes be loaded from offline snapshot files.

// Ref is a nested reference carrying only the fields the engine needs.
type Ref struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// ScopedRef is a nested location or site reference with its own tenant.
type ScopedRef struct {
	ID     int64  `json:"id" yaml:"id"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Tenant *Ref   `json:"tenant,omitempty" yaml:"tenant,omitempty"`
}

// Labeled is a value/label pair the API uses for choice fields.
type Labeled struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// AddrRef is a nested IP address reference.
type AddrRef struct {
	ID      int64  `json:"id" yaml:"id"`
	Address string `json:"address" yaml:"address"`
}

// Tag is a record tag.
type Tag struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug,omitempty" yaml:"slug,omitempty"`
}

// Device is a raw device record.
type Device struct {
	ID           int64          `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Role         *Ref           `json:"role,omitempty" yaml:"role,omitempty"`
	Platform     *Ref           `json:"platform,omitempty" yaml:"platform,omitempty"`
	Serial       string         `json:"serial,omitempty" yaml:"serial,omitempty"`
	PrimaryIP4   *AddrRef       `json:"primary_ip4,omitempty" yaml:"primary_ip4,omitempty"`
	PrimaryIP6   *AddrRef       `json:"primary_ip6,omitempty" yaml:"primary_ip6,omitempty"`
	Tenant       *Ref           `json:"tenant,omitempty" yaml:"tenant,omitempty"`
	Location     *ScopedRef     `json:"location,omitempty" yaml:"location,omitempty"`
	Site         *ScopedRef     `json:"site,omitempty" yaml:"site,omitempty"`
	CustomFields map[string]any `json:"custom_fields,omitempty" yaml:"custom_fields,omitempty"`
}

// Interface is a raw interface record.
type Interface struct {
	ID           int64    `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Label        string   `json:"label,omitempty" yaml:"label,omitempty"`
	Enabled      bool     `json:"enabled" yaml:"enabled"`
	Type         *Labeled `json:"type,omitempty" yaml:"type,omitempty"`
	Device       *Ref     `json:"device,omitempty" yaml:"device,omitempty"`
	Bridge       *Ref     `json:"bridge,omitempty" yaml:"bridge,omitempty"`
	Tags         []Tag    `json:"tags,omitempty" yaml:"tags,omitempty"`
	Mode         *Labeled `json:"mode,omitempty" yaml:"mode,omitempty"`
	UntaggedVLAN *Ref     `json:"untagged_vlan,omitempty" yaml:"untagged_vlan,omitempty"`
	TaggedVLANs  []Ref    `json:"tagged_vlans,omitempty" yaml:"tagged_vlans,omitempty"`
	WirelessLANs []Ref    `json:"wireless_lans,omitempty" yaml:"wireless_lans,omitempty"`
}

// FrontPort is a raw front port record.
type FrontPort struct {
	ID       int64 `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Device   *Ref  `json:"device,omitempty" yaml:"device,omitempty"`
	RearPort *Ref  `json:"rear_port,omitempty" yaml:"rear_port,omitempty"`
}

// RearPort is a raw rear port record.
type RearPort struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Device    *Ref   `json:"device,omitempty" yaml:"device,omitempty"`
	Positions int    `json:"positions,omitempty" yaml:"positions,omitempty"`
}

// Termination is one polymorphic cable termination, discriminated by
// object_type.
type Termination struct {
	ObjectType string `json:"object_type" yaml:"object_type"`
	ObjectID   int64  `json:"object_id" yaml:"object_id"`
}

// Cable is a raw cable record. Each side is a list in the source schema;
// the engine requires exactly one termination per side.
type Cable struct {
	ID            int64         `json:"id" yaml:"id"`
	ATerminations []Termination `json:"a_terminations" yaml:"a_terminations"`
	BTerminations []Termination `json:"b_terminations" yaml:"b_terminations"`
}

// VLAN is a raw VLAN record.
type VLAN struct {
	ID    int64  `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	VID   int    `json:"vid" yaml:"vid"`
	Group *Ref   `json:"group,omitempty" yaml:"group,omitempty"`
}

// VLANGroup is a raw VLAN group record.
type VLANGroup struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	Slug string `json:"slug,omitempty" yaml:"slug,omitempty"`
}

// L2VPNTermination is one polymorphic virtual-private-network assignment,
// discriminated by assigned_object_type.
type L2VPNTermination struct {
	ID                 int64  `json:"id" yaml:"id"`
	AssignedObjectType string `json:"assigned_object_type" yaml:"assigned_object_type"`
	AssignedObjectID   int64  `json:"assigned_object_id" yaml:"assigned_object_id"`
}

// L2VPN is a raw virtual-private-network record.
type L2VPN struct {
	ID           int64              `json:"id" yaml:"id"`
	Name         string             `json:"name" yaml:"name"`
	Type         *Labeled           `json:"type,omitempty" yaml:"type,omitempty"`
	Identifier   *int64             `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	Terminations []L2VPNTermination `json:"terminations,omitempty" yaml:"terminations,omitempty"`
}

// WirelessLAN is a raw wireless network record.
type WirelessLAN struct {
	ID       int64  `json:"id" yaml:"id"`
	SSID     string `json:"ssid" yaml:"ssid"`
	AuthType string `json:"auth_type,omitempty" yaml:"auth_type,omitempty"`
	AuthPSK  string `json:"auth_psk,omitempty" yaml:"auth_psk,omitempty"`
	VLAN     *Ref   `json:"vlan,omitempty" yaml:"vlan,omitempty"`
	Group    *Ref   `json:"group,omitempty" yaml:"group,omitempty"`
}

// WirelessLANGroup is a raw wireless group record.
type WirelessLANGroup struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Tenant is a raw tenant record.
type Tenant struct {
	ID           int64          `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Slug         string         `json:"slug,omitempty" yaml:"slug,omitempty"`
	CustomFields map[string]any `json:"custom_fields,omitempty" yaml:"custom_fields,omitempty"`
}

// AssignedObject marks an IP address assignment, discriminated by
// assigned_object_type.
type AssignedObject struct {
	Type string `json:"assigned_object_type,omitempty" yaml:"assigned_object_type,omitempty"`
	ID   int64  `json:"assigned_object_id,omitempty" yaml:"assigned_object_id,omitempty"`
}

// IPAddress is a raw address record.
type IPAddress struct {
	ID                 int64    `json:"id" yaml:"id"`
	Address            string   `json:"address" yaml:"address"`
	Role               *Labeled `json:"role,omitempty" yaml:"role,omitempty"`
	AssignedObjectType string   `json:"assigned_object_type,omitempty" yaml:"assigned_object_type,omitempty"`
	AssignedObjectID   int64    `json:"assigned_object_id,omitempty" yaml:"assigned_object_id,omitempty"`
}

// Prefix is a raw prefix record.
type Prefix struct {
	ID     int64    `json:"id" yaml:"id"`
	Prefix string   `json:"prefix" yaml:"prefix"`
	Role   *Ref     `json:"role,omitempty" yaml:"role,omitempty"`
	Status *Labeled `json:"status,omitempty" yaml:"status,omitempty"`
}

// IPRange is a raw range record.
type IPRange struct {
	ID           int64  `json:"id" yaml:"id"`
	StartAddress string `json:"start_address" yaml:"start_address"`
	EndAddress   string `json:"end_address" yaml:"end_address"`
	Role         *Ref   `json:"role,omitempty" yaml:"role,omitempty"`
}

// Snapshot is the fully materialized raw record set for one resolution run.
type Snapshot struct {
	Devices           []Device           `json:"devices" yaml:"devices"`
	Interfaces        []Interface        `json:"interfaces" yaml:"interfaces"`
	FrontPorts        []FrontPort        `json:"front_ports" yaml:"front_ports"`
	RearPorts         []RearPort         `json:"rear_ports" yaml:"rear_ports"`
	Cables            []Cable            `json:"cables" yaml:"cables"`
	VLANs             []VLAN             `json:"vlans" yaml:"vlans"`
	VLANGroups        []VLANGroup        `json:"vlan_groups" yaml:"vlan_groups"`
	L2VPNs            []L2VPN            `json:"l2vpns" yaml:"l2vpns"`
	WirelessLANs      []WirelessLAN      `json:"wireless_lans" yaml:"wireless_lans"`
	WirelessLANGroups []WirelessLANGroup `json:"wireless_lan_groups" yaml:"wireless_lan_groups"`
	Tenants           []Tenant           `json:"tenants" yaml:"tenants"`
	IPAddresses       []IPAddress        `json:"ip_addresses" yaml:"ip_addresses"`
	Prefixes          []Prefix           `json:"prefixes" yaml:"prefixes"`
	IPRanges          []IPRange          `json:"ip_ranges" yaml:"ip_ranges"`
}

// Object type discriminators used by polymorphic fields.
const (
	ObjectTypeInterface = "dcim.interface"
	ObjectTypeFrontPort = "dcim.frontport"
	ObjectTypeRearPort  = "dcim.rearport"
	ObjectTypeVLAN      = "ipam.vlan"
)
