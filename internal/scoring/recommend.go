package scoring

import (
	"sort"

	"github.com/clearbill/assess/internal/catalog"
)

// weakCategoryBump is added to a recommendation's priority when its target
// category scored below weakCategoryThreshold, so struggling areas surface
// first.
const (
	weakCategoryThreshold = 40
	weakCategoryBump      = 10
)

// TriggeredRecommendation is a catalog recommendation whose trigger matched,
// with its priority adjusted for the respondent's category scores.
type TriggeredRecommendation struct {
	catalog.Recommendation
	AdjustedPriority int `json:"adjusted_priority"`
}

// Recommendations evaluates every catalog recommendation against the answers
// and returns the triggered set, highest adjusted priority first. Ordering is
// stable so equal priorities keep their catalog order.
func (e *Engine) Recommendations(answers AnswerSet) []TriggeredRecommendation {
	seg := e.segment(answers)
	scores := e.CalculateScores(answers)

	var out []TriggeredRecommendation
	for i := range e.catalog.Recommendations {
		rec := &e.catalog.Recommendations[i]
		if !rec.AppliesTo(seg.ID) {
			continue
		}
		if !seg.CategoryActive(rec.CategoryIndex) {
			continue
		}
		if !e.triggered(rec, answers) {
			continue
		}
		adjusted := rec.Priority
		if rec.CategoryIndex < len(scores.Categories) && scores.Categories[rec.CategoryIndex] < weakCategoryThreshold {
			adjusted += weakCategoryBump
		}
		out = append(out, TriggeredRecommendation{Recommendation: *rec, AdjustedPriority: adjusted})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AdjustedPriority > out[j].AdjustedPriority
	})
	return out
}

func (e *Engine) triggered(rec *catalog.Recommendation, answers AnswerSet) bool {
	for i := range rec.Trigger {
		if !evalCondition(&rec.Trigger[i], answers) {
			return false
		}
	}
	return true
}

// evalCondition evaluates one trigger clause. Negated membership operators
// treat an unset answer as a match; everything else requires an answer.
func evalCondition(c *catalog.Condition, answers AnswerSet) bool {
	switch c.Op {
	case catalog.OpIncludes:
		for _, v := range c.Values {
			if !answers.Includes(c.QuestionID, v) {
				return false
			}
		}
		return true

	case catalog.OpNotIncludes:
		for _, v := range c.Values {
			if answers.Includes(c.QuestionID, v) {
				return false
			}
		}
		return true

	case catalog.OpNotIncludesAll:
		// True when at least one listed value is missing.
		for _, v := range c.Values {
			if !answers.Includes(c.QuestionID, v) {
				return true
			}
		}
		return false

	case catalog.OpIncludesAny:
		return answers.IncludesAny(c.QuestionID, c.Values)

	case catalog.OpEquals:
		s, ok := answers.String(c.QuestionID)
		return ok && len(c.Values) > 0 && s == c.Values[0]

	case catalog.OpEqualsAny:
		s, ok := answers.String(c.QuestionID)
		if !ok {
			return false
		}
		for _, v := range c.Values {
			if s == v {
				return true
			}
		}
		return false

	case catalog.OpNotEqualsAny:
		s, ok := answers.String(c.QuestionID)
		if !ok {
			return true
		}
		for _, v := range c.Values {
			if s == v {
				return false
			}
		}
		return true

	case catalog.OpLessThan:
		return answers.NumberOr(c.QuestionID, 0) < c.Value

	default:
		return false
	}
}
