// Package engine implements the Ultimate Tic-Tac-Toe analysis engine: the
// precomputed evaluation tables, the static evaluator and the alpha-beta
// search.
package engine

import (
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/board"
)

// Outcome scores. Heuristic evaluations always stay well inside this range.
const (
	OutcomeWin  = 1_000_000
	OutcomeLoss = -OutcomeWin
	OutcomeDraw = 0
)

// Line weights. The big weights score a sub-board in its role as a
// meta-board cell, the small weights score its interior.
const (
	bigTwoCount   = 90
	bigOneCount   = 20
	smallTwoCount = 8
	smallOneCount = 1

	// sqBig scales the per-cell positional term inside the meta context.
	sqBig = 25
)

// Positional weights per cell class.
const (
	cornerWeight = 7
	edgeWeight   = 5
	centreWeight = 9
)

// evalLarge and evalSmall score every (us, them) pair of 9-bit cell
// patterns, indexed by them<<9|us. They are filled once at startup and
// immutable afterwards, so concurrent searches may share them freely.
var (
	evalLarge [512 * 512]int32
	evalSmall [512 * 512]int32
)

func init() {
	initEvalTables()
}

// tableIndex builds the table index of a grid pair.
func tableIndex(us, them board.Grid) int {
	return int(them)<<9 | int(us)
}

// initEvalTables walks all 262,144 grid pairs and fills both tables.
func initEvalTables() {
	for them := board.Grid(0); them < 512; them++ {
		for us := board.Grid(0); us < 512; us++ {
			fillEntry(us, them)
		}
	}
}

func fillEntry(us, them board.Grid) {
	usLines := us.Lines()
	themLines := them.Lines()

	var usWon, themWon bool
	var large, small int32

	for k := 0; k < 8; k++ {
		usCount := board.LineCount(usLines, k)
		themCount := board.LineCount(themLines, k)

		// A line touched by both sides can never be completed.
		if usCount > 0 && themCount > 0 {
			continue
		}
		if usCount == 3 {
			usWon = true
			break
		}
		if themCount == 3 {
			themWon = true
			break
		}

		switch usCount {
		case 2:
			large += bigTwoCount
			small += smallTwoCount
		case 1:
			large += bigOneCount
			small += smallOneCount
		}
		switch themCount {
		case 2:
			large -= bigTwoCount
			small -= smallTwoCount
		case 1:
			large -= bigOneCount
			small -= smallOneCount
		}
	}

	idx := tableIndex(us, them)
	switch {
	case usWon:
		evalLarge[idx] = OutcomeWin
		evalSmall[idx] = 0
	case themWon:
		evalLarge[idx] = OutcomeLoss
		evalSmall[idx] = 0
	case us|them == board.FullGrid:
		evalLarge[idx] = OutcomeDraw
		evalSmall[idx] = 0
	default:
		pos := int32(cornerWeight*((us&board.CornerMask).PopCount()-(them&board.CornerMask).PopCount()) +
			edgeWeight*((us&board.EdgeMask).PopCount()-(them&board.EdgeMask).PopCount()) +
			centreWeight*((us&board.CentreMask).PopCount()-(them&board.CentreMask).PopCount()))
		evalLarge[idx] = large + pos*sqBig
		evalSmall[idx] = small + pos
	}
}
