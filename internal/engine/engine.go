package engine

import (
	"errors"

	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/board"
)

// DefaultMaxDepth bounds analysis requests unless the embedder chooses
// another ceiling.
const DefaultMaxDepth = 12

// Boundary errors. These are the only error kinds the engine reports; the
// search itself is total on well-formed positions.
var (
	ErrDepthNonPositive = errors.New("engine: depth must be positive")
	ErrDepthTooLarge    = errors.New("engine: depth exceeds maximum")
)

// Analysis is the result of a root search.
type Analysis struct {
	Depth int          `json:"depth"`
	Score int          `json:"score"`
	PV    []board.Move `json:"pv"`
}

// AnalysisCache stores finished analyses keyed by position, side and depth.
// Implementations must be safe for concurrent use.
type AnalysisCache interface {
	LoadAnalysis(wire string, side bool, depth int) (Analysis, bool)
	StoreAnalysis(wire string, side bool, a Analysis) error
}

// Engine wraps the searcher with a depth ceiling and an optional analysis
// cache. A single Engine may serve concurrent Analyze calls: each call runs
// on its own Searcher and the evaluation tables are immutable.
type Engine struct {
	maxDepth int
	cache    AnalysisCache
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth sets the depth ceiling. Values above MaxDepth are clamped.
func WithMaxDepth(d int) Option {
	return func(e *Engine) {
		if d > MaxDepth {
			d = MaxDepth
		}
		e.maxDepth = d
	}
}

// WithCache attaches an analysis cache.
func WithCache(c AnalysisCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// New creates an engine. The evaluation tables are package state filled at
// startup, so construction is cheap.
func New(opts ...Option) *Engine {
	e := &Engine{maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(e)
	}
	return e
}

// MaxSearchDepth returns the configured depth ceiling.
func (e *Engine) MaxSearchDepth() int {
	return e.maxDepth
}

// Analyze validates the requested depth, then searches the position and
// returns the score with its principal variation. Cached results are reused
// when the same position was analysed to the same depth before.
func (e *Engine) Analyze(pos board.Position, side bool, depth int) (Analysis, error) {
	if depth <= 0 {
		return Analysis{}, ErrDepthNonPositive
	}
	if depth > e.maxDepth {
		return Analysis{}, ErrDepthTooLarge
	}

	wire := pos.Wire()
	if e.cache != nil {
		if a, ok := e.cache.LoadAnalysis(wire, side, depth); ok {
			return a, nil
		}
	}

	score, pv := NewSearcher().RootCall(pos, side, depth)
	a := Analysis{Depth: depth, Score: score, PV: pv}

	if e.cache != nil {
		// Cache writes are best-effort; an analysis is never lost to a
		// storage fault.
		_ = e.cache.StoreAnalysis(wire, side, a)
	}
	return a, nil
}
