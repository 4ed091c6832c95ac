package board

import "testing"

// play folds a move sequence over the starting position, X first.
func play(t *testing.T, moves ...Move) Position {
	t.Helper()
	p := NewPosition()
	side := true
	for _, m := range moves {
		legal := p.GenerateMoves()
		found := false
		for i := 0; i < legal.Len(); i++ {
			if legal.Get(i) == m {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("move %d (%s) is not legal", m, m)
		}
		p = p.PlayMove(m, side)
		side = !side
	}
	return p
}

func TestNewPosition(t *testing.T) {
	p := NewPosition()
	if p.us != 0 || p.them != 0 {
		t.Errorf("marks on empty board: us=%d them=%d", p.us, p.them)
	}
	if p.share != 9<<54 {
		t.Errorf("share = %d, want %d", p.share, uint64(9)<<54)
	}
	if p.NextZone() != NextZoneAny {
		t.Errorf("NextZone = %d, want %d", p.NextZone(), NextZoneAny)
	}
}

func TestPlayMoveCentre(t *testing.T) {
	p := NewPosition().PlayMove(40, true)
	if p.us != 1<<40 {
		t.Errorf("us = %b, want bit 40", p.us)
	}
	if p.them != 0 {
		t.Errorf("them = %b, want 0", p.them)
	}
	metaUs, metaThem := p.MetaGrids()
	if metaUs != 0 || metaThem != 0 {
		t.Errorf("meta grids = %b %b, want empty", metaUs, metaThem)
	}
	if p.NextZone() != 4 {
		t.Errorf("NextZone = %d, want 4", p.NextZone())
	}
}

// TestPlayMoveShareZones checks that zone 7 and 8 marks land in the share
// word halves.
func TestPlayMoveShareZones(t *testing.T) {
	tests := []struct {
		m    Move
		side bool
		bit  uint
	}{
		{63, true, 0},   // zone 7 cell 0, mover half
		{63, false, 18}, // zone 7 cell 0, opponent half
		{71, true, 8},   // zone 7 cell 8
		{72, true, 9},   // zone 8 cell 0
		{80, false, 35}, // zone 8 cell 8, opponent half
	}
	for _, tc := range tests {
		p := NewPosition().PlayMove(tc.m, tc.side)
		if p.us != 0 || p.them != 0 {
			t.Errorf("move %d: mark leaked into us/them words", tc.m)
		}
		want := uint64(1)<<tc.bit | uint64(tc.m.Cell())<<54
		if p.share != want {
			t.Errorf("move %d side %v: share = %d, want %d", tc.m, tc.side, p.share, want)
		}
	}
}

// TestZoneCompletion plays a legal game fragment in which X completes the
// top row of zone 0 and checks the meta bit.
func TestZoneCompletion(t *testing.T) {
	// X: 0, 1, 2 in zone 0 (row 0); the interleaved O moves keep the
	// sequence legal without blocking.
	p := play(t, 0, 3, 28, 9, 1, 10, 11, 18, 2)

	metaUs, metaThem := p.MetaGrids()
	if metaUs != 1 {
		t.Errorf("meta us = %09b, want zone 0 only", metaUs)
	}
	if metaThem != 0 {
		t.Errorf("meta them = %09b, want empty", metaThem)
	}
	if metaUs&metaThem != 0 {
		t.Error("zone won by both players")
	}
	// The final move pointed at cell 2, and zone 2 is open.
	if p.NextZone() != 2 {
		t.Errorf("NextZone = %d, want 2", p.NextZone())
	}
}

// TestNextZoneDecided checks that a move pointing at a decided zone yields
// the any-zone sentinel.
func TestNextZoneDecided(t *testing.T) {
	// Continue the zone-0 win above with O pointing back at zone 0.
	p := play(t, 0, 3, 28, 9, 1, 10, 11, 18, 2, 19, 12, 27)
	if p.NextZone() != NextZoneAny {
		t.Errorf("NextZone = %d, want %d after pointing at a won zone", p.NextZone(), NextZoneAny)
	}
}

// TestNextZoneFull checks that a move pointing at a full zone yields the
// any-zone sentinel.
func TestNextZoneFull(t *testing.T) {
	// Fill zone 5 with a drawn pattern, bypassing legality.
	p := NewPosition()
	for _, c := range []int{0, 1, 5, 6, 8} {
		p = p.PlayMove(Move(45+c), true)
	}
	for _, c := range []int{2, 3, 4, 7} {
		p = p.PlayMove(Move(45+c), false)
	}
	us5, them5 := p.ZoneGrids(5)
	if us5|them5 != FullGrid {
		t.Fatalf("zone 5 not full: %09b", us5|them5)
	}
	metaUs, metaThem := p.MetaGrids()
	if (metaUs|metaThem)>>5&1 != 0 {
		t.Fatal("drawn zone must not be marked won")
	}

	p = p.PlayMove(5, true) // zone 0 cell 5 points at the full zone
	if p.NextZone() != NextZoneAny {
		t.Errorf("NextZone = %d, want %d after pointing at a full zone", p.NextZone(), NextZoneAny)
	}
}

func TestZoneGridsRoundTrip(t *testing.T) {
	p := play(t, 40, 44, 72, 4)
	us4, them4 := p.ZoneGrids(4)
	if us4 != 1<<4 {
		t.Errorf("zone 4 us = %09b, want cell 4", us4)
	}
	if them4 != 1<<8 {
		t.Errorf("zone 4 them = %09b, want cell 8", them4)
	}
	us8, them8 := p.ZoneGrids(8)
	if us8 != 1 || them8 != 0 {
		t.Errorf("zone 8 = %09b/%09b, want cell 0 for the mover", us8, them8)
	}
	us0, them0 := p.ZoneGrids(0)
	if us0 != 0 || them0 != 1<<4 {
		t.Errorf("zone 0 = %09b/%09b, want cell 4 for the opponent", us0, them0)
	}
}
