package scoring

import "github.com/clearbill/assess/internal/catalog"

// CategoryGap is one category's delta against the segment benchmark.
type CategoryGap struct {
	Index     int    `json:"index"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Benchmark int    `json:"benchmark"`
	Gap       int    `json:"gap"`
	Status    string `json:"status"`
}

// GapAnalysis compares a score result against the segment's industry
// benchmark row.
type GapAnalysis struct {
	Segment       string        `json:"segment"`
	SegmentLabel  string        `json:"segment_label"`
	Overall       int           `json:"overall"`
	Benchmark     int           `json:"benchmark"`
	OverallGap    int           `json:"overall_gap"`
	OverallStatus string        `json:"overall_status"`
	Categories    []CategoryGap `json:"categories"`

	// BiggestOpportunity and StrongestArea rank the active categories by
	// gap; both are nil before any category is active.
	BiggestOpportunity *CategoryGap `json:"biggest_opportunity,omitempty"`
	StrongestArea      *CategoryGap `json:"strongest_area,omitempty"`
}

// gapStatus buckets a score-minus-benchmark delta.
func gapStatus(gap int) string {
	switch {
	case gap >= 10:
		return "above"
	case gap >= -5:
		return "near"
	case gap >= -15:
		return "below"
	default:
		return "significantly_below"
	}
}

// AnalyzeGap computes the benchmark comparison for the given answers. The
// benchmark row falls back to the default segment's row when the respondent's
// segment has no entry.
func (e *Engine) AnalyzeGap(answers AnswerSet) GapAnalysis {
	scores := e.CalculateScores(answers)
	seg := e.catalog.SegmentOrDefault(scores.Segment)
	bench := e.catalog.BenchmarkFor(scores.Segment)

	out := GapAnalysis{
		Segment:       scores.Segment,
		SegmentLabel:  seg.Label,
		Overall:       scores.Overall,
		Benchmark:     bench.Overall,
		OverallGap:    scores.Overall - bench.Overall,
		OverallStatus: gapStatus(scores.Overall - bench.Overall),
	}

	for _, ci := range seg.ActiveCategories() {
		ref := 0
		if ci < len(bench.Categories) {
			ref = bench.Categories[ci]
		}
		cg := CategoryGap{
			Index:     ci,
			Name:      e.catalog.CategoryName(ci),
			Score:     scores.Categories[ci],
			Benchmark: ref,
			Gap:       scores.Categories[ci] - ref,
			Status:    gapStatus(scores.Categories[ci] - ref),
		}
		out.Categories = append(out.Categories, cg)
	}

	for i := range out.Categories {
		cg := &out.Categories[i]
		if out.BiggestOpportunity == nil || cg.Gap < out.BiggestOpportunity.Gap {
			out.BiggestOpportunity = cg
		}
		if out.StrongestArea == nil || cg.Gap > out.StrongestArea.Gap {
			out.StrongestArea = cg
		}
	}
	return out
}

// BenchmarkFor exposes the catalog benchmark lookup with its default-segment
// fallback.
func (e *Engine) BenchmarkFor(segment string) *catalog.Benchmark {
	return e.catalog.BenchmarkFor(segment)
}
