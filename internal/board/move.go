package board

import (
	"fmt"
	"strconv"
)

// Move indexes one of the 81 cells of the playing field: cell (m mod 9) of
// zone (m div 9), both numbered 0-8 in row-major order.
type Move uint8

// NullMove is the sentinel stored in unused principal-variation slots.
const NullMove Move = 81

// zoneNames are the compass names of the nine zones (and of the nine cells
// within a zone), in index order.
var zoneNames = [9]string{"NW", "N", "NE", "W", "C", "E", "SW", "S", "SE"}

// Zone returns the sub-board the move is played in.
func (m Move) Zone() int {
	return int(m) / 9
}

// Cell returns the cell within the sub-board.
func (m Move) Cell() int {
	return int(m) % 9
}

// String renders the move as "<zone>/<cell>" using compass names,
// e.g. move 40 is "C/C". NullMove renders as "-".
func (m Move) String() string {
	if m >= NullMove {
		return "-"
	}
	return zoneNames[m.Zone()] + "/" + zoneNames[m.Cell()]
}

// ParseMove parses a decimal move index in [0, 81).
func ParseMove(s string) (Move, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= 81 {
		return NullMove, fmt.Errorf("invalid move %q", s)
	}
	return Move(n), nil
}

// MoveList holds the legal moves of a position. The zero value is empty.
type MoveList struct {
	moves [81]Move
	count int
}

// Add appends a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Moves returns the list contents as a slice.
func (ml *MoveList) Moves() []Move {
	return ml.moves[:ml.count]
}
