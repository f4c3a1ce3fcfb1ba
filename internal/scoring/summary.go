package scoring

import "fmt"

// Summary is the headline block for the results page and exports.
type Summary struct {
	Headline           string   `json:"headline"`
	ResiliencyIndex    int      `json:"resiliency_index"`
	ResiliencyLevel    string   `json:"resiliency_level"`
	ScoreLevel         string   `json:"score_level"`
	Narrative          string   `json:"narrative"`
	TopRecommendations []string `json:"top_recommendations"`
}

// Report is the complete assessment output: everything the API, PDF, CSV,
// and webhook layers consume, computed in one pass.
type Report struct {
	Scores          ScoreResult               `json:"scores"`
	Gap             GapAnalysis               `json:"gap"`
	Recommendations []TriggeredRecommendation `json:"recommendations"`
	Projection      Projection                `json:"projection"`
	Insights        Insights                  `json:"insights"`
	Resiliency      ResiliencyIndex           `json:"resiliency"`
	Strengths       Strengths                 `json:"strengths"`
	Summary         Summary                   `json:"summary"`
}

// BuildReport runs the full analysis pipeline over one answer set.
func (e *Engine) BuildReport(answers AnswerSet) Report {
	r := Report{
		Scores:          e.CalculateScores(answers),
		Gap:             e.AnalyzeGap(answers),
		Recommendations: e.Recommendations(answers),
		Projection:      e.ProjectedScores(answers),
		Insights:        e.CalculateInsights(answers),
		Resiliency:      e.CalculateResiliencyIndex(answers),
		Strengths:       e.AnalyzeStrengths(answers),
	}
	r.Summary = e.buildSummary(&r)
	return r
}

func (e *Engine) buildSummary(r *Report) Summary {
	s := Summary{
		Headline:        fmt.Sprintf("Resiliency Index: %d/100", r.Resiliency.Index),
		ResiliencyIndex: r.Resiliency.Index,
		ResiliencyLevel: r.Resiliency.Level,
		ScoreLevel:      ScoreLevel(r.Scores.Overall),
	}
	vulnerable := ""
	if r.Resiliency.MostVulnerable != nil {
		vulnerable = r.Resiliency.MostVulnerable.Name
	}
	s.Narrative = fmt.Sprintf(
		"Resiliency Index %d/100 (%s). Payment readiness score %d/100. With $%.0f in annual patient billing, there is an estimated $%d annual opportunity to improve. Biggest vulnerability: %s.",
		r.Resiliency.Index, r.Resiliency.Level, r.Scores.Overall,
		r.Insights.AnnualBilling, r.Insights.TotalFinancialOpportunity, vulnerable,
	)
	for i, rec := range r.Recommendations {
		if i == 3 {
			break
		}
		s.TopRecommendations = append(s.TopRecommendations, rec.Title)
	}
	return s
}
