package scoring

import (
	"log/slog"

	"github.com/clearbill/assess/internal/catalog"
)

// NeutralCategoryScore is the value a category falls back to when no question
// contributed to it, which happens routinely early in the flow. The midpoint
// keeps partial assessments rendering a plausible score instead of zeroing
// out untouched categories.
const NeutralCategoryScore = 50

// Engine evaluates a catalog against answer sets. Every method is a pure
// function of the immutable catalog and the caller's answers; the engine
// holds no per-session state and is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	neutral int
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithNeutralScore overrides the default score for categories with no
// contributing questions.
func WithNeutralScore(score int) Option {
	return func(e *Engine) { e.neutral = score }
}

// NewEngine creates an Engine over a validated catalog.
func NewEngine(cat *catalog.Catalog, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		catalog: cat,
		neutral: NeutralCategoryScore,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// SegmentID resolves the routing answer, checking the primary segment key
// then any aliases. Empty means routing has not happened yet.
func (e *Engine) SegmentID(answers AnswerSet) string {
	if s, ok := answers.String(e.catalog.SegmentKey); ok && s != "" {
		return s
	}
	for _, key := range e.catalog.SegmentKeyAliases {
		if s, ok := answers.String(key); ok && s != "" {
			return s
		}
	}
	return ""
}

// segment resolves the active segment config, falling back to the catalog
// default so scoring is always computable mid-flow.
func (e *Engine) segment(answers AnswerSet) *catalog.Segment {
	return e.catalog.SegmentOrDefault(e.SegmentID(answers))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
