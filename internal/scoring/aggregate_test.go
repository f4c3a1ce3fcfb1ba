package scoring

import (
	"reflect"
	"testing"
)

func TestCalculateScoresWeightedOverall(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	scores := e.CalculateScores(AnswerSet{
		"practice_type": "gen",
		"ops_quality":   "high",    // 80
		"ops_process":   "partial", // 60
	})

	if scores.Categories[0] != 70 {
		t.Errorf("category 0: expected 70, got %d", scores.Categories[0])
	}
	if scores.Categories[1] != NeutralCategoryScore || scores.Categories[2] != NeutralCategoryScore {
		t.Errorf("untouched categories should be neutral, got %v", scores.Categories)
	}
	// round(70*0.4 + 50*0.35 + 50*0.25)
	if scores.Overall != 58 {
		t.Errorf("overall: expected 58, got %d", scores.Overall)
	}
}

func TestCalculateScoresTwoCategorySegment(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	scores := e.CalculateScores(AnswerSet{
		"practice_type": "duo",
		"ops_quality":   "top", // 90
		"pay_quality":   "bad", // 40
	})

	if !scores.UseTwoCategories {
		t.Error("expected two-category segment")
	}
	// round(90*0.6 + 40*0.4); the zero-weight category is excluded
	if scores.Overall != 70 {
		t.Errorf("overall: expected 70, got %d", scores.Overall)
	}
}

func TestInactiveCategoryDropsContributions(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	scores := e.CalculateScores(AnswerSet{
		"practice_type": "duo",
		"ops_quality":   "top",
		"pay_quality":   "bad",
		"comp_position": "strong", // targets the disabled category
	})

	if scores.Categories[2] != NeutralCategoryScore {
		t.Errorf("disabled category should stay neutral, got %d", scores.Categories[2])
	}
	if scores.Overall != 70 {
		t.Errorf("overall unchanged by disabled-category answer: expected 70, got %d", scores.Overall)
	}
}

func TestCrossCategoryWeightConservation(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())

	// Alone, a 0.7/0.3 split question yields its own score in both categories.
	scores := e.CalculateScores(AnswerSet{
		"practice_type": "gen",
		"split_burden":  "light", // 90
	})
	if scores.Categories[0] != 90 || scores.Categories[1] != 90 {
		t.Errorf("expected 90/90 from split question alone, got %v", scores.Categories)
	}

	// Mixed with a full-weight question: (0.7*90 + 1.0*20) / 1.7 = 48.8 -> 49.
	scores = e.CalculateScores(AnswerSet{
		"practice_type": "gen",
		"split_burden":  "light",
		"ops_quality":   "low",
	})
	if scores.Categories[0] != 49 {
		t.Errorf("expected weighted category 0 of 49, got %d", scores.Categories[0])
	}
}

func TestCalculateScoresIdempotent(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	answers := AnswerSet{
		"practice_type": "gen",
		"ops_quality":   "high",
		"split_burden":  "heavy",
		"comp_position": "weak",
	}
	first := e.CalculateScores(answers)
	second := e.CalculateScores(answers)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ across calls: %+v vs %+v", first, second)
	}
}

func TestCalculateScoresClamped(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	cases := []AnswerSet{
		{},
		{"practice_type": "gen"},
		{"practice_type": "gen", "ops_quality": "top", "ops_process": "automated", "split_burden": "light", "pay_quality": "good", "comp_position": "strong"},
		{"practice_type": "duo", "ops_quality": "low", "pay_quality": "bad"},
	}
	for _, answers := range cases {
		scores := e.CalculateScores(answers)
		if scores.Overall < 0 || scores.Overall > 100 {
			t.Errorf("overall %d out of range for %v", scores.Overall, answers)
		}
		for i, c := range scores.Categories {
			if c < 0 || c > 100 {
				t.Errorf("category %d = %d out of range for %v", i, c, answers)
			}
		}
	}
}

func TestHiddenAutoScoreContribution(t *testing.T) {
	e := NewEngine(fullCatalog(t), discardLogger())

	// autopay absent: autopay_rate is hidden and auto-scores 5.
	// Category 1 = (pay_methods 20 + auto 5) / 2 = 12.5 -> 13.
	scores := e.CalculateScores(AnswerSet{
		"practice_type": "gen",
		"pay_methods":   []string{"portal"},
	})
	if scores.Categories[1] != 13 {
		t.Errorf("expected hidden auto-score to drag category 1 to 13, got %d", scores.Categories[1])
	}

	// autopay present and enrollment answered: the real score replaces the
	// auto-score. Category 1 = (45 + 95) / 2 = 70.
	scores = e.CalculateScores(AnswerSet{
		"practice_type": "gen",
		"pay_methods":   []string{"portal", "autopay"},
		"autopay_rate":  60.0,
	})
	if scores.Categories[1] != 70 {
		t.Errorf("expected category 1 of 70 once visible and answered, got %d", scores.Categories[1])
	}
}

func TestVisibleUnansweredContributesNothing(t *testing.T) {
	e := NewEngine(fullCatalog(t), discardLogger())
	scores := e.CalculateScores(AnswerSet{
		"practice_type": "gen",
		"pay_methods":   []string{"autopay"}, // 25; autopay_rate now visible but unanswered
	})
	if scores.Categories[1] != 25 {
		t.Errorf("visible unanswered question must not contribute, expected 25, got %d", scores.Categories[1])
	}
}

func TestScoreLevel(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{90, "Highly Resilient"},
		{85, "Highly Resilient"},
		{70, "Well Positioned"},
		{55, "Building Resilience"},
		{40, "At Risk"},
		{39, "Significant Gaps"},
		{0, "Significant Gaps"},
	}
	for _, tc := range cases {
		if got := ScoreLevel(tc.score); got != tc.want {
			t.Errorf("ScoreLevel(%d): expected %q, got %q", tc.score, tc.want, got)
		}
	}
}
