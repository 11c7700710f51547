package topology

import (
	"testing"

	"netfabric/internal/domain"
)

func TestWalkDirectCable(t *testing.T) {
	snap := newSnapBuilder().
		device(1, "sw1").iface(10, 1, "eth0").
		device(2, "sw2").iface(20, 2, "eth0").
		cable(100, domain.InterfacePort(10), domain.InterfacePort(20)).
		build()

	res := walkFrom(snap, 100, domain.InterfacePort(20))
	if res.Err != nil {
		t.Fatalf("unexpected walk failure: %s at %s", res.Err.Reason, res.Err.At)
	}
	if res.Terminal != domain.InterfacePort(20) {
		t.Errorf("terminal = %s, want interface:20", res.Terminal)
	}
	if len(res.Cables) != 1 || res.Cables[0] != 100 {
		t.Errorf("cables = %v, want [100]", res.Cables)
	}
}

func TestWalkThroughOnePanel(t *testing.T) {
	// sw1:eth0 --c1-- fp(1 panel)rp --c2-- sw2:eth0
	snap := newSnapBuilder().
		device(1, "sw1").iface(10, 1, "eth0").
		device(2, "sw2").iface(20, 2, "eth0").
		panel(3, 30, 40).
		cable(100, domain.InterfacePort(10), domain.FrontPortRef(30)).
		cable(101, domain.RearPortRef(40), domain.InterfacePort(20)).
		build()

	res := walkFrom(snap, 100, domain.FrontPortRef(30))
	if res.Err != nil {
		t.Fatalf("unexpected walk failure: %s at %s", res.Err.Reason, res.Err.At)
	}
	if res.Terminal != domain.InterfacePort(20) {
		t.Errorf("terminal = %s, want interface:20", res.Terminal)
	}
	if len(res.Cables) != 2 {
		t.Errorf("cables = %v, want two segments", res.Cables)
	}
}

func TestWalkThroughThreePanels(t *testing.T) {
	b := newSnapBuilder().
		device(1, "sw1").iface(10, 1, "eth0").
		device(2, "sw2").iface(20, 2, "eth0")
	// Three panels daisy-chained front-to-rear.
	b.panel(3, 30, 40)
	b.panel(4, 50, 60)
	b.panel(5, 70, 80)
	b.cable(100, domain.InterfacePort(10), domain.FrontPortRef(30))
	b.cable(101, domain.RearPortRef(40), domain.FrontPortRef(50))
	b.cable(102, domain.RearPortRef(60), domain.FrontPortRef(70))
	b.cable(103, domain.RearPortRef(80), domain.InterfacePort(20))
	snap := b.build()

	res := walkFrom(snap, 100, domain.FrontPortRef(30))
	if res.Err != nil {
		t.Fatalf("unexpected walk failure: %s at %s", res.Err.Reason, res.Err.At)
	}
	if res.Terminal != domain.InterfacePort(20) {
		t.Errorf("terminal = %s, want interface:20", res.Terminal)
	}
	if len(res.Cables) != 4 {
		t.Errorf("traversed %d cables, want 4 (%v)", len(res.Cables), res.Cables)
	}
}

func TestWalkDangling(t *testing.T) {
	tests := []struct {
		name  string
		setup func() *domain.Snapshot
		start domain.CablePort
	}{
		{
			name: "front port without rear mapping",
			setup: func() *domain.Snapshot {
				b := newSnapBuilder().
					device(1, "sw1").iface(10, 1, "eth0").
					device(3, "panel").frontPort(30, 3, 0)
				b.cable(100, domain.InterfacePort(10), domain.FrontPortRef(30))
				return b.build()
			},
			start: domain.FrontPortRef(30),
		},
		{
			name: "rear port with no onward cable",
			setup: func() *domain.Snapshot {
				b := newSnapBuilder().
					device(1, "sw1").iface(10, 1, "eth0").
					panel(3, 30, 40)
				b.cable(100, domain.InterfacePort(10), domain.FrontPortRef(30))
				return b.build()
			},
			start: domain.FrontPortRef(30),
		},
		{
			name: "rear port with no front ports",
			setup: func() *domain.Snapshot {
				b := newSnapBuilder().
					device(1, "sw1").iface(10, 1, "eth0").
					device(3, "panel").rearPort(40, 3)
				b.cable(100, domain.InterfacePort(10), domain.RearPortRef(40))
				return b.build()
			},
			start: domain.RearPortRef(40),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := walkFrom(tt.setup(), 100, tt.start)
			if res.Err == nil {
				t.Fatalf("walk resolved to %s, want dangling", res.Terminal)
			}
			if res.Err.Reason != domain.UnresolvedDangling {
				t.Errorf("reason = %s, want dangling", res.Err.Reason)
			}
		})
	}
}

func TestWalkCycle(t *testing.T) {
	// Two panels cabled rear-to-front in a loop.
	b := newSnapBuilder().
		device(1, "sw1").iface(10, 1, "eth0")
	b.panel(3, 30, 40)
	b.panel(4, 50, 60)
	b.cable(100, domain.InterfacePort(10), domain.FrontPortRef(30))
	b.cable(101, domain.RearPortRef(40), domain.FrontPortRef(50))
	b.cable(102, domain.RearPortRef(60), domain.FrontPortRef(30))
	snap := b.build()

	res := walkFrom(snap, 100, domain.FrontPortRef(30))
	if res.Err == nil {
		t.Fatalf("walk resolved to %s, want cycle", res.Terminal)
	}
	if res.Err.Reason != domain.UnresolvedCycle {
		t.Errorf("reason = %s, want cycle", res.Err.Reason)
	}
}

func TestWalkFanIn(t *testing.T) {
	// Two front ports pair into one rear port. Arriving at the rear port,
	// the walk continues only when exactly one front port is cabled.
	build := func(cableSecondFront bool) *domain.Snapshot {
		b := newSnapBuilder().
			device(1, "sw1").iface(10, 1, "eth0").
			device(2, "sw2").iface(20, 2, "eth0").
			device(3, "panel").rearPort(40, 3).
			frontPort(30, 3, 40).
			frontPort(31, 3, 40)
		b.cable(100, domain.InterfacePort(10), domain.RearPortRef(40))
		b.cable(101, domain.FrontPortRef(30), domain.InterfacePort(20))
		if cableSecondFront {
			b.device(4, "sw3").iface(21, 4, "eth0")
			b.cable(102, domain.FrontPortRef(31), domain.InterfacePort(21))
		}
		return b.build()
	}

	t.Run("single cabled front disambiguates", func(t *testing.T) {
		res := walkFrom(build(false), 100, domain.RearPortRef(40))
		if res.Err != nil {
			t.Fatalf("unexpected walk failure: %s at %s", res.Err.Reason, res.Err.At)
		}
		if res.Terminal != domain.InterfacePort(20) {
			t.Errorf("terminal = %s, want interface:20", res.Terminal)
		}
	})

	t.Run("two cabled fronts is ambiguous", func(t *testing.T) {
		res := walkFrom(build(true), 100, domain.RearPortRef(40))
		if res.Err == nil {
			t.Fatalf("walk resolved to %s, want ambiguous", res.Terminal)
		}
		if res.Err.Reason != domain.UnresolvedAmbiguous {
			t.Errorf("reason = %s, want ambiguous", res.Err.Reason)
		}
	})
}

func TestWalkAmbiguousParallelCables(t *testing.T) {
	// A rear port with two onward cables cannot pick a segment.
	b := newSnapBuilder().
		device(1, "sw1").iface(10, 1, "eth0").
		device(2, "sw2").iface(20, 2, "eth0").iface(21, 2, "eth1").
		panel(3, 30, 40)
	b.cable(100, domain.InterfacePort(10), domain.FrontPortRef(30))
	b.cable(101, domain.RearPortRef(40), domain.InterfacePort(20))
	b.cable(102, domain.RearPortRef(40), domain.InterfacePort(21))
	snap := b.build()

	res := walkFrom(snap, 100, domain.FrontPortRef(30))
	if res.Err == nil {
		t.Fatalf("walk resolved to %s, want ambiguous", res.Terminal)
	}
	if res.Err.Reason != domain.UnresolvedAmbiguous {
		t.Errorf("reason = %s, want ambiguous", res.Err.Reason)
	}
}
