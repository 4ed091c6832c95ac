// Package game tracks one Ultimate Tic-Tac-Toe game on top of the board
// package: the move list, the side to move and the terminal state.
package game

import (
	"fmt"

	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/board"
)

// Result is the terminal state of a game.
type Result int

const (
	Ongoing Result = iota
	XWon
	OWon
	Drawn
)

// String returns a short human-readable result.
func (r Result) String() string {
	switch r {
	case XWon:
		return "X wins"
	case OWon:
		return "O wins"
	case Drawn:
		return "draw"
	default:
		return "ongoing"
	}
}

// Session is a game in progress. X always moves first and occupies the
// position's us words.
type Session struct {
	pos   board.Position
	moves []board.Move
}

// NewSession starts a game from the empty board.
func NewSession() *Session {
	return &Session{pos: board.NewPosition()}
}

// Position returns the current position.
func (s *Session) Position() board.Position {
	return s.pos
}

// Moves returns the moves played so far.
func (s *Session) Moves() []board.Move {
	return s.moves
}

// XToMove reports whether it is X's turn.
func (s *Session) XToMove() bool {
	return len(s.moves)%2 == 0
}

// Play applies a move after checking it against the legal move list.
func (s *Session) Play(m board.Move) error {
	legal := s.pos.GenerateMoves()
	ok := false
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i) == m {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("game: illegal move %s", m)
	}

	s.pos = s.pos.PlayMove(m, s.XToMove())
	s.moves = append(s.moves, m)
	return nil
}

// Result returns the terminal state of the current position. A position
// with no legal moves and no completed meta line is a draw.
func (s *Session) Result() Result {
	metaX, metaO := s.pos.MetaGrids()
	if metaX.HasLine() {
		return XWon
	}
	if metaO.HasLine() {
		return OWon
	}
	legal := s.pos.GenerateMoves()
	if legal.Len() == 0 {
		return Drawn
	}
	return Ongoing
}

// Replay builds a session by applying a move list from the starting
// position, failing on the first illegal move.
func Replay(moves []board.Move) (*Session, error) {
	s := NewSession()
	for i, m := range moves {
		if err := s.Play(m); err != nil {
			return nil, fmt.Errorf("game: move %d: %w", i, err)
		}
	}
	return s, nil
}
