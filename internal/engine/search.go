package engine

import (
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/board"
)

// MaxDepth is the deepest search a Searcher supports.
const MaxDepth = 32

// Searcher performs the fail-hard alpha-beta search. It is single-threaded
// and carries no state between root calls beyond its preallocated buffers;
// run concurrent searches on separate Searchers.
type Searcher struct {
	maxDepth int
	nodes    uint64

	// pv[ply] holds the best line found at that ply, moves written at
	// indices ply and beyond. One extra row so leaves have a row too.
	pv [MaxDepth + 1][MaxDepth]board.Move
}

// NewSearcher creates a new searcher.
func NewSearcher() *Searcher {
	return &Searcher{}
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// RootCall searches the position to exactly depth plies with a full
// (-OutcomeWin, OutcomeWin) window and returns the score together with the
// principal variation. The PV always has length depth; unused trailing slots
// hold NullMove. depth must be in [1, MaxDepth].
func (s *Searcher) RootCall(pos board.Position, side bool, depth int) (int, []board.Move) {
	s.maxDepth = depth
	s.nodes = 0

	score := s.alphaBeta(pos, side, depth, -OutcomeWin, OutcomeWin)

	pv := make([]board.Move, depth)
	copy(pv, s.pv[0][:depth])
	return score, pv
}

// alphaBeta is the recursive negamax search. It is fail-hard: the returned
// score is clamped to [alpha, beta].
func (s *Searcher) alphaBeta(pos board.Position, side bool, depth, alpha, beta int) int {
	s.nodes++

	ply := s.maxDepth - depth
	line := s.pv[ply][:s.maxDepth]
	for i := ply; i < s.maxDepth; i++ {
		line[i] = board.NullMove
	}

	if depth == 0 {
		return s.adjustMate(Evaluate(pos, side), depth)
	}

	moves := pos.GenerateMoves()
	if moves.Len() == 0 {
		// Terminal: score the meta-board itself. A finished game that is
		// not a mate counts as a draw regardless of the heuristic value.
		metaUs, metaThem := pos.MetaGrids()
		score := int(evalLarge[tableIndex(metaUs, metaThem)])
		if !side {
			score = -score
		}
		if score != OutcomeWin && score != OutcomeLoss {
			return OutcomeDraw
		}
		return s.adjustMate(score, depth)
	}

	child := s.pv[ply+1][:s.maxDepth]
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		score := -s.alphaBeta(pos.PlayMove(m, side), !side, depth-1, -beta, -alpha)

		if score >= beta {
			line[ply] = m
			copy(line[ply+1:], child[ply+1:])
			return beta
		}
		if score > alpha {
			alpha = score
			line[ply] = m
			copy(line[ply+1:], child[ply+1:])
		}
	}

	return alpha
}

// adjustMate pulls mate scores toward the root so the search prefers the
// shortest win and the longest loss.
func (s *Searcher) adjustMate(score, depth int) int {
	switch score {
	case OutcomeWin:
		return OutcomeWin - s.maxDepth + depth
	case OutcomeLoss:
		return OutcomeLoss + s.maxDepth - depth
	}
	return score
}
