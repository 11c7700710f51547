package topology

import "netfabric/internal/domain"

// snapBuilder assembles normalized snapshots for tests without going
// through raw records.
type snapBuilder struct {
	snap *domain.Snapshot
}

func newSnapBuilder() *snapBuilder {
	return &snapBuilder{snap: domain.NewSnapshot()}
}

func (b *snapBuilder) device(id domain.DeviceID, name string) *snapBuilder {
	b.snap.Devices[id] = &domain.Device{ID: id, Name: name}
	return b
}

func (b *snapBuilder) iface(id domain.InterfaceID, dev domain.DeviceID, name string) *snapBuilder {
	b.snap.Interfaces[id] = &domain.Interface{ID: id, Name: name, Device: dev, Enabled: true}
	return b
}

func (b *snapBuilder) frontPort(id domain.FrontPortID, dev domain.DeviceID, rear domain.RearPortID) *snapBuilder {
	b.snap.FrontPorts[id] = &domain.FrontPort{ID: id, Device: dev, RearPort: rear}
	return b
}

func (b *snapBuilder) rearPort(id domain.RearPortID, dev domain.DeviceID) *snapBuilder {
	b.snap.RearPorts[id] = &domain.RearPort{ID: id, Device: dev}
	return b
}

func (b *snapBuilder) cable(id domain.CableID, a, b2 domain.CablePort) *snapBuilder {
	b.snap.Cables[id] = &domain.Cable{ID: id, A: a, B: b2}
	return b
}

// panel adds a single-position pass-through: device, one front port mapped
// to one rear port.
func (b *snapBuilder) panel(dev domain.DeviceID, fp domain.FrontPortID, rp domain.RearPortID) *snapBuilder {
	b.device(dev, "panel")
	b.frontPort(fp, dev, rp)
	b.rearPort(rp, dev)
	return b
}

func (b *snapBuilder) build() *domain.Snapshot {
	b.snap.BuildIndexes()
	return b.snap
}
