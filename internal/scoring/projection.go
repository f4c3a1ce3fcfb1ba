package scoring

import (
	"math"
	"sort"

	"github.com/clearbill/assess/internal/catalog"
)

// Projection diminishing-return tuning. Stacked small boosts would otherwise
// push projected categories straight to 100.
const (
	projectionMultiplier = 1.5
	headroomFraction     = 0.7
	topImprovementCount  = 5
)

// QuestionImprovement is one question's projected gain and its contribution
// to category and overall scores.
type QuestionImprovement struct {
	QuestionID      string `json:"question_id"`
	QuestionText    string `json:"question_text"`
	Description     string `json:"description"`
	CurrentScore    int    `json:"current_score"`
	ProjectedScore  int    `json:"projected_score"`
	Improvement     int    `json:"improvement"`
	OverallImpact   int    `json:"overall_impact"`
	CategoryImpacts []int  `json:"category_impacts"`
	Category        string `json:"category,omitempty"`
	SourceRef       int    `json:"source_ref,omitempty"`
}

// CategoryImprovement is one category's current vs projected score.
type CategoryImprovement struct {
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Current     int    `json:"current"`
	Projected   int    `json:"projected"`
	Improvement int    `json:"improvement"`
}

// Projection is the full what-if result: current scores, projected scores
// after configured per-question boosts, and the per-question breakdown.
type Projection struct {
	CurrentOverall         int                   `json:"current_overall"`
	CurrentCategories      []int                 `json:"current_categories"`
	ProjectedOverall       int                   `json:"projected_overall"`
	ProjectedCategories    []int                 `json:"projected_categories"`
	OverallImprovement     int                   `json:"overall_improvement"`
	TopImprovements        []QuestionImprovement `json:"top_improvements"`
	AdditionalImprovements []QuestionImprovement `json:"additional_improvements,omitempty"`
	CategoryImprovements   []CategoryImprovement `json:"category_improvements"`
	QuestionsImproved      int                   `json:"questions_improved"`
}

// ProjectedScores estimates what the scores could look like if every
// configured improvement landed. Category gains are averaged and damped
// against remaining headroom so projections stay plausible.
func (e *Engine) ProjectedScores(answers AnswerSet) Projection {
	scores := e.CalculateScores(answers)
	seg := e.catalog.SegmentOrDefault(scores.Segment)
	n := e.catalog.CategoryCount()
	improvements := e.catalog.Projection.Improvements

	var perQuestion []QuestionImprovement
	for _, q := range e.relevantForProjection(answers, seg.ID) {
		imp, ok := improvements[q.ID]
		if !ok {
			continue
		}
		current, scored := ScoreQuestion(q, answers[q.ID])
		if !scored {
			if q.AutoScore == nil {
				continue
			}
			current = q.AutoScore.Score
		}
		projected := current + imp.Boost
		if projected > imp.MaxScore {
			projected = imp.MaxScore
		}
		gain := projected - current
		if gain <= 0 {
			continue
		}

		impacts := make([]int, n)
		if q.CrossCategory() {
			for ci, w := range q.CategoryWeights {
				if w > 0 && ci < n {
					impacts[ci] = int(math.Round(float64(gain) * w))
				}
			}
		} else if q.CategoryIndex != nil && *q.CategoryIndex < n {
			impacts[*q.CategoryIndex] = gain
		}

		var overall float64
		for ci, impact := range impacts {
			if ci < len(seg.CategoryWeights) {
				overall += float64(impact) * seg.CategoryWeights[ci]
			}
		}
		overallImpact := int(math.Round(overall))
		if overallImpact <= 0 {
			continue
		}

		qi := QuestionImprovement{
			QuestionID:      q.ID,
			QuestionText:    q.Text,
			Description:     imp.Description,
			CurrentScore:    current,
			ProjectedScore:  projected,
			Improvement:     gain,
			OverallImpact:   overallImpact,
			CategoryImpacts: impacts,
			SourceRef:       imp.SourceRef,
		}
		if q.CategoryIndex != nil {
			qi.Category = e.catalog.CategoryName(*q.CategoryIndex)
		}
		perQuestion = append(perQuestion, qi)
	}

	sort.SliceStable(perQuestion, func(i, j int) bool {
		return perQuestion[i].OverallImpact > perQuestion[j].OverallImpact
	})

	projectedCategories := make([]int, n)
	copy(projectedCategories, scores.Categories)

	totals := make([]int, n)
	counts := make([]int, n)
	for _, qi := range perQuestion {
		for ci, impact := range qi.CategoryImpacts {
			if impact > 0 {
				totals[ci] += impact
				counts[ci]++
			}
		}
	}
	for i := 0; i < n; i++ {
		if counts[i] == 0 {
			continue
		}
		avg := float64(totals[i]) / float64(counts[i])
		headroom := float64(100 - projectedCategories[i])
		effective := math.Min(avg*projectionMultiplier, headroom*headroomFraction)
		projectedCategories[i] = clampScore(int(math.Round(float64(projectedCategories[i]) + effective)))
	}

	var projectedOverall float64
	for ci, w := range seg.CategoryWeights {
		if ci < n {
			projectedOverall += float64(projectedCategories[ci]) * w
		}
	}

	out := Projection{
		CurrentOverall:      scores.Overall,
		CurrentCategories:   scores.Categories,
		ProjectedOverall:    clampScore(int(math.Round(projectedOverall))),
		ProjectedCategories: projectedCategories,
		QuestionsImproved:   len(perQuestion),
	}
	out.OverallImprovement = out.ProjectedOverall - out.CurrentOverall

	if len(perQuestion) > topImprovementCount {
		out.TopImprovements = perQuestion[:topImprovementCount]
		out.AdditionalImprovements = perQuestion[topImprovementCount:]
	} else {
		out.TopImprovements = perQuestion
	}

	for i := 0; i < n; i++ {
		out.CategoryImprovements = append(out.CategoryImprovements, CategoryImprovement{
			Index:       i,
			Name:        e.catalog.CategoryName(i),
			Current:     scores.Categories[i],
			Projected:   projectedCategories[i],
			Improvement: projectedCategories[i] - scores.Categories[i],
		})
	}
	return out
}

// relevantForProjection is every visible non-diagnostic non-routing question
// plus the hidden conditionals that auto-score for this segment.
func (e *Engine) relevantForProjection(answers AnswerSet, segment string) []*catalog.Question {
	visible := e.VisibleQuestions(answers)
	seen := make(map[string]bool, len(visible))

	var out []*catalog.Question
	for _, q := range visible {
		seen[q.ID] = true
		if q.Diagnostic || q.Routing {
			continue
		}
		out = append(out, q)
	}
	for i := range e.catalog.Questions {
		q := &e.catalog.Questions[i]
		if q.AutoScore != nil && q.Conditional != nil && q.AppliesTo(segment) && !seen[q.ID] {
			out = append(out, q)
		}
	}
	return out
}
