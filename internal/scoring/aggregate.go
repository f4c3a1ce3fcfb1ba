package scoring

import (
	"math"

	"github.com/clearbill/assess/internal/catalog"
)

// ScoreResult is the aggregated category and overall scoring for one answer
// set. It is recomputed on demand and never mutated in place.
type ScoreResult struct {
	Overall          int       `json:"overall"`
	Categories       []int     `json:"categories"`
	Segment          string    `json:"segment"`
	Weights          []float64 `json:"weights"`
	UseTwoCategories bool      `json:"use_two_categories"`
}

// CalculateScores computes per-category scores and the weighted overall score
// for the current answers. Missing or partial data degrades to defaults; the
// questionnaire must always render a score, so this never fails.
func (e *Engine) CalculateScores(answers AnswerSet) ScoreResult {
	seg := e.segment(answers)
	visible := e.visibleSet(answers)
	n := e.catalog.CategoryCount()

	weightedSums := make([]float64, n)
	weightTotals := make([]float64, n)

	for i := range e.catalog.Questions {
		q := &e.catalog.Questions[i]
		if !q.Scorable() || !q.AppliesTo(seg.ID) {
			continue
		}
		c := contributionFor(q, answers, visible)
		if c.kind == contribNone {
			continue
		}
		accumulate(q, seg, float64(c.score), weightedSums, weightTotals)
	}

	categories := make([]int, n)
	for i := range categories {
		if weightTotals[i] == 0 {
			categories[i] = e.neutral
			continue
		}
		categories[i] = clampScore(int(math.Round(weightedSums[i] / weightTotals[i])))
	}

	var overall float64
	for _, i := range seg.ActiveCategories() {
		overall += float64(categories[i]) * seg.CategoryWeights[i]
	}

	weights := make([]float64, n)
	copy(weights, seg.CategoryWeights)

	return ScoreResult{
		Overall:          clampScore(int(math.Round(overall))),
		Categories:       categories,
		Segment:          seg.ID,
		Weights:          weights,
		UseTwoCategories: seg.UseTwoCategories,
	}
}

// accumulate folds one question's score into the category accumulators,
// splitting across categories when cross-category weights are present.
// Contributions aimed at a category the segment has disabled are dropped.
func accumulate(q *catalog.Question, seg *catalog.Segment, score float64, sums, totals []float64) {
	if q.CrossCategory() {
		for ci, w := range q.CategoryWeights {
			if w <= 0 || ci >= len(sums) || !seg.CategoryActive(ci) {
				continue
			}
			sums[ci] += score * w
			totals[ci] += w
		}
		return
	}
	if q.CategoryIndex == nil {
		return
	}
	ci := *q.CategoryIndex
	if ci < 0 || ci >= len(sums) || !seg.CategoryActive(ci) {
		return
	}
	sums[ci] += score
	totals[ci] += 1.0
}

func (e *Engine) visibleSet(answers AnswerSet) map[string]bool {
	visible := e.VisibleQuestions(answers)
	set := make(map[string]bool, len(visible))
	for _, q := range visible {
		set[q.ID] = true
	}
	return set
}

// ScoreLevel maps an overall score to its display label.
func ScoreLevel(score int) string {
	switch {
	case score >= 85:
		return "Highly Resilient"
	case score >= 70:
		return "Well Positioned"
	case score >= 55:
		return "Building Resilience"
	case score >= 40:
		return "At Risk"
	default:
		return "Significant Gaps"
	}
}
