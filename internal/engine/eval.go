package engine

import (
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/board"
)

// Evaluate statically scores the position. Positive is good for the player
// holding the us words; side flips the sign so the returned value is always
// from the caller's perspective, which is how the search implements negamax.
func Evaluate(p board.Position, side bool) int {
	metaUs, metaThem := p.MetaGrids()

	score := int(evalLarge[tableIndex(metaUs, metaThem)])
	if score == OutcomeWin || score == OutcomeLoss {
		if side {
			return score
		}
		return -score
	}

	// Every zone decided without a meta line is a dead game.
	if metaUs|metaThem == board.FullGrid {
		return OutcomeDraw
	}

	// Undecided, unfilled zones contribute their interior evaluation.
	decided := metaUs | metaThem
	for z := 0; z < 9; z++ {
		if decided>>uint(z)&1 == 1 {
			continue
		}
		us, them := p.ZoneGrids(z)
		if us|them == board.FullGrid {
			continue
		}
		score += int(evalSmall[tableIndex(us, them)])
	}

	if side {
		return score
	}
	return -score
}
