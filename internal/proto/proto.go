// Package proto implements the line-oriented analysis protocol spoken by
// the CLI front-end. Requests set a position and ask for a search; responses
// are tagged lines: "info depth <d> <pv moves...> <score>" on success, or
// "error <category> <sub-category> [<detail>]" on invalid input.
package proto

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/board"
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/engine"
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/game"
)

// Handler runs the protocol loop against a reader/writer pair.
type Handler struct {
	engine *engine.Engine

	// Current position and which word holds the side to move's marks.
	// Positions replayed from the start keep X in the us words, so side
	// toggles with the ply; wire positions are viewed from the mover and
	// always analyse with side true.
	pos  board.Position
	side bool

	in  io.Reader
	out io.Writer
}

// New creates a protocol handler reading commands from in and writing
// responses to out.
func New(eng *engine.Engine, in io.Reader, out io.Writer) *Handler {
	return &Handler{
		engine: eng,
		pos:    board.NewPosition(),
		side:   true,
		in:     in,
		out:    out,
	}
}

// Run processes commands until EOF or "quit".
func (h *Handler) Run() {
	scanner := bufio.NewScanner(h.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "position":
			h.handlePosition(args)
		case "go":
			h.handleGo(args)
		case "moves":
			h.handleMoves()
		case "newgame":
			h.pos = board.NewPosition()
			h.side = true
		case "quit":
			return
		// Debug command
		case "d":
			fmt.Fprint(h.out, h.pos.String())
		}
	}
}

// handlePosition parses and sets up a position.
// Formats:
//   - position start
//   - position start moves 40 36 0
//   - position <us> <them> <share>
func (h *Handler) handlePosition(args []string) {
	if len(args) == 0 {
		h.errorf("board", "parse", "empty position")
		return
	}

	if args[0] == "start" {
		if len(args) == 1 {
			h.pos = board.NewPosition()
			h.side = true
			return
		}
		if args[1] != "moves" {
			h.errorf("board", "parse", "expected moves, got %s", args[1])
			return
		}
		moves := make([]board.Move, 0, len(args)-2)
		for _, s := range args[2:] {
			m, err := board.ParseMove(s)
			if err != nil {
				h.errorf("board", "parse", "%v", err)
				return
			}
			moves = append(moves, m)
		}
		session, err := game.Replay(moves)
		if err != nil {
			h.errorf("board", "parse", "%v", err)
			return
		}
		h.pos = session.Position()
		h.side = session.XToMove()
		return
	}

	pos, err := board.ParseWire(strings.Join(args, " "))
	if err != nil {
		h.errorf("board", "parse", "%v", err)
		return
	}
	h.pos = pos
	h.side = true
}

// handleGo runs a search: "go depth <d>".
func (h *Handler) handleGo(args []string) {
	if len(args) != 2 || args[0] != "depth" {
		h.errorf("depth", "invalid", "usage: go depth <d>")
		return
	}
	depth, err := strconv.Atoi(args[1])
	if err != nil {
		h.errorf("depth", "invalid", "%q is not a number", args[1])
		return
	}

	a, err := h.engine.Analyze(h.pos, h.side, depth)
	switch {
	case err == engine.ErrDepthNonPositive:
		h.errorf("depth", "nonpositive")
	case err == engine.ErrDepthTooLarge:
		h.errorf("depth", "toolarge", "%d", h.engine.MaxSearchDepth())
	case err != nil:
		h.errorf("internal", "search", "%v", err)
	default:
		fmt.Fprintln(h.out, FormatInfo(a))
	}
}

// handleMoves lists the legal moves of the current position.
func (h *Handler) handleMoves() {
	legal := h.pos.GenerateMoves()
	names := make([]string, legal.Len())
	for i := range names {
		names[i] = legal.Get(i).String()
	}
	fmt.Fprintln(h.out, strings.Join(names, " "))
}

// FormatInfo renders the tagged info response for an analysis. The PV is
// printed up to its first sentinel slot.
func FormatInfo(a engine.Analysis) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "info depth %d", a.Depth)
	for _, m := range a.PV {
		if m == board.NullMove {
			break
		}
		sb.WriteString(" ")
		sb.WriteString(m.String())
	}
	sb.WriteString(" ")
	sb.WriteString(engine.FormatScore(a.Score))
	return sb.String()
}

// errorf writes a tagged error response.
func (h *Handler) errorf(category, sub string, detail ...interface{}) {
	if len(detail) == 0 {
		fmt.Fprintf(h.out, "error %s %s\n", category, sub)
		return
	}
	format := detail[0].(string)
	fmt.Fprintf(h.out, "error %s %s %s\n", category, sub, fmt.Sprintf(format, detail[1:]...))
}
