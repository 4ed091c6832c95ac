package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartWire is the wire form of the starting position.
const StartWire = "0 0 162129586585337856"

// Wire serialises the position as the three bitboard words in decimal,
// separated by single spaces. This is the format accepted across the
// application boundary.
func (p Position) Wire() string {
	return fmt.Sprintf("%d %d %d", p.us, p.them, p.share)
}

// ParseWire parses the three-word decimal serialisation produced by Wire.
// It rejects malformed input: wrong field count, non-numeric words,
// overlapping marks, overlapping meta halves, or an out-of-range next-zone
// field.
func ParseWire(s string) (Position, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return Position{}, fmt.Errorf("board: want 3 words, got %d", len(fields))
	}

	var words [3]uint64
	for i, f := range fields {
		w, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return Position{}, fmt.Errorf("board: word %d: %q is not a 64-bit decimal", i, f)
		}
		words[i] = w
	}

	p := Position{us: words[0], them: words[1], share: words[2]}

	if p.us>>63 != 0 || p.them>>63 != 0 {
		return Position{}, fmt.Errorf("board: reserved cell bits set")
	}
	if p.us&p.them != 0 {
		return Position{}, fmt.Errorf("board: cell held by both players")
	}
	if p.share&(p.share>>shareThemOffset)&0x3FFFF != 0 {
		return Position{}, fmt.Errorf("board: cell held by both players")
	}
	metaUs, metaThem := p.MetaGrids()
	if metaUs&metaThem != 0 {
		return Position{}, fmt.Errorf("board: zone won by both players")
	}
	if p.NextZone() > NextZoneAny {
		return Position{}, fmt.Errorf("board: next zone %d out of range", p.NextZone())
	}
	if p.share>>58 != 0 {
		return Position{}, fmt.Errorf("board: reserved share bits set")
	}

	return p, nil
}
