package scoring

import "testing"

func TestGapStatusThresholds(t *testing.T) {
	cases := []struct {
		gap  int
		want string
	}{
		{15, "above"},
		{10, "above"},
		{0, "near"},
		{-5, "near"},
		{-6, "below"},
		{-15, "below"},
		{-16, "significantly_below"},
	}
	for _, tc := range cases {
		if got := gapStatus(tc.gap); got != tc.want {
			t.Errorf("gapStatus(%d): expected %q, got %q", tc.gap, tc.want, got)
		}
	}
}

func TestAnalyzeGap(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	gap := e.AnalyzeGap(AnswerSet{
		"practice_type": "gen",
		"ops_quality":   "high",
		"ops_process":   "partial",
	})

	if gap.Overall != 58 || gap.Benchmark != 55 {
		t.Fatalf("expected 58 vs benchmark 55, got %d vs %d", gap.Overall, gap.Benchmark)
	}
	if gap.OverallGap != 3 || gap.OverallStatus != "near" {
		t.Errorf("expected gap 3/near, got %d/%s", gap.OverallGap, gap.OverallStatus)
	}
	if len(gap.Categories) != 3 {
		t.Fatalf("expected 3 category rows, got %d", len(gap.Categories))
	}
	if gap.Categories[0].Gap != 15 || gap.Categories[0].Status != "above" {
		t.Errorf("category 0: expected +15/above, got %+v", gap.Categories[0])
	}

	if gap.StrongestArea == nil || gap.StrongestArea.Index != 0 {
		t.Errorf("expected strongest area at category 0, got %+v", gap.StrongestArea)
	}
	if gap.BiggestOpportunity == nil || gap.BiggestOpportunity.Index != 1 {
		t.Errorf("expected biggest opportunity at category 1, got %+v", gap.BiggestOpportunity)
	}
}

func TestAnalyzeGapTwoCategorySegment(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	gap := e.AnalyzeGap(AnswerSet{
		"practice_type": "duo",
		"ops_quality":   "top",
		"pay_quality":   "bad",
	})

	if len(gap.Categories) != 2 {
		t.Fatalf("disabled category should be omitted, got %d rows", len(gap.Categories))
	}
	for _, cg := range gap.Categories {
		if cg.Index == 2 {
			t.Error("disabled category index present in gap analysis")
		}
	}
}

func TestAnalyzeGapUnknownSegmentFallsBack(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	gap := e.AnalyzeGap(AnswerSet{"practice_type": "mystery"})
	if gap.Benchmark != 55 {
		t.Errorf("expected default-segment benchmark 55, got %d", gap.Benchmark)
	}
}
