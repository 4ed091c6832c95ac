package board

import "math/bits"

// Grid is a 9-bit cell pattern of a single 3x3 grid, covering either one
// player's marks in a sub-board or one player's won zones on the meta-board.
// Bit c corresponds to cell c, cells numbered 0-8 in row-major order
// (NW, N, NE, W, C, E, SW, S, SE).
type Grid uint32

// FullGrid has all nine cells occupied.
const FullGrid Grid = 0x1FF

// Cell masks by board region.
const (
	CornerMask Grid = 0b101000101
	EdgeMask   Grid = 0b010101010
	CentreMask Grid = 0b000010000
)

// lineMagics maps each cell to its contribution in the 24-bit line word.
// Each of the eight lines (three columns, three rows, two diagonals) owns a
// 3-bit slot; a cell places one distinct bit into the slot of every line
// passing through it, so summing the magics of the occupied cells never
// carries between slots.
//
// Slot order, low to high: col0, col1, col2, row0, row1, row2,
// main diagonal, anti diagonal.
var lineMagics = [9]uint32{
	0b000_100_000_000_100_000_000_100,
	0b000_000_000_000_010_000_100_000,
	0b100_000_000_000_001_100_000_000,
	0b000_000_000_100_000_000_000_010,
	0b010_010_000_010_000_000_010_000,
	0b000_000_000_001_000_010_000_000,
	0b001_000_100_000_000_000_000_001,
	0b000_000_010_000_000_000_001_000,
	0b000_001_001_000_000_001_000_000,
}

// presenceMasks maps each cell to the 8-bit set of lines passing through it,
// one bit per line in the slot order of lineMagics.
var presenceMasks = [9]uint8{
	0x49, 0x0A, 0x8C,
	0x11, 0xD2, 0x14,
	0xA1, 0x22, 0x64,
}

// Lines returns a 24-bit word of eight 3-bit slots, one per line of the grid.
// Each slot holds the presence bits of that line's three cells, so the number
// of marks on line k is the population count of slot k, and a completed line
// reads 0b111.
func (g Grid) Lines() uint32 {
	var w uint32
	for c := 0; c < 9; c++ {
		w += uint32(g>>c&1) * lineMagics[c]
	}
	return w
}

// HasLine reports whether the grid contains a completed line of three.
// Every line starts as a candidate; each empty cell eliminates the lines
// passing through it.
func (g Grid) HasLine() bool {
	alive := uint8(0xFF)
	for c := 0; c < 9; c++ {
		if g>>c&1 == 0 {
			alive &^= presenceMasks[c]
		}
	}
	return alive != 0
}

// PopCount returns the number of occupied cells.
func (g Grid) PopCount() int {
	return bits.OnesCount32(uint32(g))
}

// LineCount returns the number of marks on line k of the precomputed
// line word returned by Lines.
func LineCount(lines uint32, k int) int {
	return bits.OnesCount32(lines >> (3 * k) & 7)
}
