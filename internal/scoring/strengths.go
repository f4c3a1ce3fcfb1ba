package scoring

import (
	"fmt"
	"sort"
)

// Strong/moderate question thresholds and result caps.
const (
	strongQuestionFloor   = 65
	moderateQuestionFloor = 40
	strongQuestionLimit   = 5
	moderateQuestionLimit = 4
)

// StrongCategory is a category at or above its benchmark.
type StrongCategory struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Gap       int    `json:"gap"`
	Highlight string `json:"highlight"`
}

// QuestionStrength is one well-answered question.
type QuestionStrength struct {
	QuestionID    string `json:"question_id"`
	Question      string `json:"question"`
	Answer        any    `json:"answer,omitempty"`
	Score         int    `json:"score"`
	CategoryIndex *int   `json:"category_index,omitempty"`
}

// Strengths highlights what the respondent is already doing well. When
// nothing clears the bar the analysis degrades to a relative strength so the
// report always has something constructive to say.
type Strengths struct {
	SummaryStatement  string             `json:"summary_statement"`
	StrongCategories  []StrongCategory   `json:"strong_categories"`
	StrongQuestions   []QuestionStrength `json:"strong_questions"`
	ModerateQuestions []QuestionStrength `json:"moderate_questions"`
	HasStrengths      bool               `json:"has_strengths"`
	EarlyJourney      bool               `json:"early_journey"`
	RelativeStrength  *StrongCategory    `json:"relative_strength,omitempty"`
}

// AnalyzeStrengths finds the categories at or above benchmark and the
// individual questions scoring well.
func (e *Engine) AnalyzeStrengths(answers AnswerSet) Strengths {
	scores := e.CalculateScores(answers)
	seg := e.catalog.SegmentOrDefault(scores.Segment)
	bench := e.catalog.BenchmarkFor(scores.Segment)

	var out Strengths
	for _, ci := range seg.ActiveCategories() {
		ref := 0
		if ci < len(bench.Categories) {
			ref = bench.Categories[ci]
		}
		gap := scores.Categories[ci] - ref
		if gap < 0 {
			continue
		}
		out.StrongCategories = append(out.StrongCategories, StrongCategory{
			Index:     ci,
			Name:      e.catalog.CategoryName(ci),
			Score:     scores.Categories[ci],
			Gap:       gap,
			Highlight: categoryHighlight(gap, bench.Label),
		})
	}

	for _, q := range e.VisibleQuestions(answers) {
		if !q.Scorable() {
			continue
		}
		score, ok := ScoreQuestion(q, answers[q.ID])
		if !ok {
			continue
		}
		entry := QuestionStrength{
			QuestionID:    q.ID,
			Question:      q.Text,
			Score:         score,
			CategoryIndex: q.CategoryIndex,
		}
		switch {
		case score >= strongQuestionFloor:
			entry.Answer = answers[q.ID]
			out.StrongQuestions = append(out.StrongQuestions, entry)
		case score >= moderateQuestionFloor:
			out.ModerateQuestions = append(out.ModerateQuestions, entry)
		}
	}
	sort.SliceStable(out.StrongQuestions, func(i, j int) bool {
		return out.StrongQuestions[i].Score > out.StrongQuestions[j].Score
	})
	sort.SliceStable(out.ModerateQuestions, func(i, j int) bool {
		return out.ModerateQuestions[i].Score > out.ModerateQuestions[j].Score
	})
	if len(out.StrongQuestions) > strongQuestionLimit {
		out.StrongQuestions = out.StrongQuestions[:strongQuestionLimit]
	}
	if len(out.ModerateQuestions) > moderateQuestionLimit {
		out.ModerateQuestions = out.ModerateQuestions[:moderateQuestionLimit]
	}

	out.HasStrengths = len(out.StrongCategories) > 0 || len(out.StrongQuestions) >= 2
	out.EarlyJourney = !out.HasStrengths

	if out.EarlyJourney {
		active := seg.ActiveCategories()
		if len(active) > 0 {
			best := active[0]
			for _, ci := range active {
				if scores.Categories[ci] > scores.Categories[best] {
					best = ci
				}
			}
			ref := 0
			if best < len(bench.Categories) {
				ref = bench.Categories[best]
			}
			out.RelativeStrength = &StrongCategory{
				Index: best,
				Name:  e.catalog.CategoryName(best),
				Score: scores.Categories[best],
				Gap:   scores.Categories[best] - ref,
			}
		}
	}

	out.SummaryStatement = strengthsSummary(&out)
	return out
}

func categoryHighlight(gap int, benchmarkLabel string) string {
	switch {
	case gap >= 15:
		return fmt.Sprintf("Excellent: %d points above the %s benchmark.", gap, benchmarkLabel)
	case gap >= 5:
		return "Solid: above the industry benchmark here."
	default:
		return "Meeting the industry standard, a good foundation to build on."
	}
}

func strengthsSummary(s *Strengths) string {
	switch {
	case len(s.StrongCategories) >= 2:
		return fmt.Sprintf("Strong performance across %d categories. A solid foundation for financial resilience is already in place.", len(s.StrongCategories))
	case len(s.StrongCategories) == 1:
		return fmt.Sprintf("The %s score stands out. Build on this strength while addressing other areas.", s.StrongCategories[0].Name)
	case len(s.StrongQuestions) > 0:
		return "Overall scores show room to grow, but specific areas are performing well. These are foundations to build on."
	default:
		return "The assessment reveals significant opportunities across the board. All of them are within the practice's control to improve."
	}
}
