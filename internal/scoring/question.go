package scoring

import (
	"math"

	"github.com/clearbill/assess/internal/catalog"
)

// ScoreQuestion converts one answer into a 0-100 score. ok is false when the
// question cannot score: missing answer, routing or diagnostic questions, an
// unmatched single option, and the number/currency types, which only feed
// financial projections.
func ScoreQuestion(q *catalog.Question, answer any) (score int, ok bool) {
	if answer == nil {
		return 0, false
	}
	if q.Routing || q.Diagnostic {
		return 0, false
	}

	switch q.Type {
	case catalog.TypeSlider:
		return scoreSlider(q, answer)
	case catalog.TypeSingle:
		return scoreSingle(q, answer)
	case catalog.TypeMulti:
		return scoreMulti(q, answer)
	default:
		// number and currency are diagnostic-only inputs
		return 0, false
	}
}

func scoreSlider(q *catalog.Question, answer any) (int, bool) {
	value, ok := AnswerSet{"v": answer}.Number("v")
	if !ok {
		return 0, false
	}
	if len(q.ScoreBands) > 0 {
		return bandScore(q.ScoreBands, value)
	}
	span := q.Max - q.Min
	if span <= 0 {
		return 0, false
	}
	return clampScore(int(math.Round((value - q.Min) / span * 100))), true
}

func scoreSingle(q *catalog.Question, answer any) (int, bool) {
	value, ok := answer.(string)
	if !ok {
		return 0, false
	}
	opt, ok := q.OptionByValue(value)
	if !ok {
		return 0, false
	}
	return opt.Score, true
}

func scoreMulti(q *catalog.Question, answer any) (int, bool) {
	selected, ok := AnswerSet{"v": answer}.List("v")
	if !ok {
		// a scalar answer to a multi question scores zero rather than
		// dropping out of the average
		return 0, true
	}

	// An exclusive option overrides everything else selected with it.
	if q.ExclusiveOption != nil {
		for _, v := range selected {
			if v == q.ExclusiveOption.Value {
				return q.ExclusiveOption.Score, true
			}
		}
	}

	total := 0
	for _, v := range selected {
		if opt, found := q.OptionByValue(v); found {
			total += opt.Points
		}
	}
	if len(q.ScoreBands) > 0 {
		return bandScore(q.ScoreBands, float64(total))
	}
	limit := q.MaxScore
	if limit == 0 {
		limit = 100
	}
	if total > limit {
		total = limit
	}
	return total, true
}

// bandScore finds the first band (descending min order) at or below value.
func bandScore(bands []catalog.ScoreBand, value float64) (int, bool) {
	for _, b := range bands {
		if value >= b.Min {
			return b.Score, true
		}
	}
	return 0, true
}
