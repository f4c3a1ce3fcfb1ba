package scoring

import (
	"io"
	"log/slog"
	"testing"

	"github.com/clearbill/assess/internal/catalog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(i int) *int { return &i }

// basicCatalog is a minimal three-category catalog with two segments and no
// conditional machinery, for exercising the aggregator arithmetic directly.
func basicCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(catalog.Catalog{
		Version:           "test",
		SegmentKey:        "practice_type",
		SegmentKeyAliases: []string{"facility_type"},
		DefaultSegment:    "gen",
		CategoryNames:     []string{"Operations", "Payments", "Competitive"},
		Segments: []catalog.Segment{
			{ID: "gen", Label: "General", CategoryWeights: []float64{0.4, 0.35, 0.25}},
			{ID: "duo", Label: "Two Track", CategoryWeights: []float64{0.6, 0.4, 0}, UseTwoCategories: true},
		},
		Questions: []catalog.Question{
			{
				ID: "practice_type", Text: "Practice type", Type: catalog.TypeSingle, Routing: true,
				Options: []catalog.Option{{Value: "gen", Score: 0}, {Value: "duo", Score: 0}},
			},
			{
				ID: "ops_quality", Text: "Operations quality", Type: catalog.TypeSingle, CategoryIndex: intPtr(0),
				Options: []catalog.Option{
					{Value: "low", Score: 20}, {Value: "mid", Score: 60},
					{Value: "high", Score: 80}, {Value: "top", Score: 90},
				},
			},
			{
				ID: "ops_process", Text: "Process automation", Type: catalog.TypeSingle, CategoryIndex: intPtr(0),
				Options: []catalog.Option{
					{Value: "manual", Score: 40}, {Value: "partial", Score: 60}, {Value: "automated", Score: 80},
				},
			},
			{
				ID: "split_burden", Text: "Staff burden", Type: catalog.TypeSingle,
				CategoryWeights: []float64{0.7, 0.3, 0},
				Options:         []catalog.Option{{Value: "heavy", Score: 40}, {Value: "light", Score: 90}},
			},
			{
				ID: "pay_quality", Text: "Payment experience", Type: catalog.TypeSingle, CategoryIndex: intPtr(1),
				Options: []catalog.Option{{Value: "bad", Score: 40}, {Value: "good", Score: 75}},
			},
			{
				ID: "comp_position", Text: "Competitive position", Type: catalog.TypeSingle, CategoryIndex: intPtr(2),
				Options: []catalog.Option{{Value: "weak", Score: 30}, {Value: "strong", Score: 85}},
			},
		},
		Benchmarks: []catalog.Benchmark{
			{Segment: "gen", Label: "General", Overall: 55, Categories: []int{55, 50, 50}, TargetARDays: 35},
			{Segment: "duo", Label: "Two Track", Overall: 52, Categories: []int{55, 48, 40}},
		},
	})
	if err != nil {
		t.Fatalf("basic catalog invalid: %v", err)
	}
	return c
}

// fullCatalog adds conditional visibility, auto-scoring, a multi-select,
// recommendations, projection config, and the force model.
func fullCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	base := catalog.Catalog{
		Version:           "test",
		SegmentKey:        "practice_type",
		SegmentKeyAliases: []string{"facility_type"},
		DefaultSegment:    "gen",
		CategoryNames:     []string{"Operations", "Payments", "Competitive"},
		Segments: []catalog.Segment{
			{ID: "gen", Label: "General", CategoryWeights: []float64{0.4, 0.35, 0.25}},
			{ID: "duo", Label: "Two Track", CategoryWeights: []float64{0.6, 0.4, 0}, UseTwoCategories: true},
		},
		Questions: []catalog.Question{
			{
				ID: "practice_type", Text: "Practice type", Type: catalog.TypeSingle, Routing: true,
				Options: []catalog.Option{{Value: "gen"}, {Value: "duo"}},
			},
			{
				ID: "ops_quality", Text: "Operations quality", Type: catalog.TypeSingle, CategoryIndex: intPtr(0),
				Options: []catalog.Option{
					{Value: "low", Score: 20}, {Value: "mid", Score: 60}, {Value: "high", Score: 80},
				},
			},
			{
				ID: "ops_process", Text: "Process automation", Type: catalog.TypeSingle, CategoryIndex: intPtr(0),
				Options: []catalog.Option{
					{Value: "manual", Score: 40}, {Value: "partial", Score: 60}, {Value: "automated", Score: 80},
				},
			},
			{
				ID: "pay_methods", Text: "Payment methods offered", Type: catalog.TypeMulti,
				CategoryIndex: intPtr(1), MaxScore: 50,
				Options: []catalog.Option{
					{Value: "autopay", Points: 25}, {Value: "portal", Points: 20},
					{Value: "text", Points: 15}, {Value: "paper", Points: 5},
					{Value: "none", Points: 0},
				},
				ExclusiveOption: &catalog.ExclusiveOption{Value: "none", Score: 5},
			},
			{
				ID: "autopay_rate", Text: "Autopay enrollment", Type: catalog.TypeSlider,
				CategoryIndex: intPtr(1), Min: 0, Max: 100,
				Conditional: &catalog.Conditional{QuestionID: "pay_methods", ShowIfIncludes: "autopay"},
				AutoScore:   &catalog.AutoScore{WhenHidden: true, Score: 5},
				ScoreBands: []catalog.ScoreBand{
					{Min: 50, Score: 95}, {Min: 30, Score: 70}, {Min: 15, Score: 45}, {Min: 0, Score: 20},
				},
			},
			{
				ID: "comp_position", Text: "Competitive position", Type: catalog.TypeSingle, CategoryIndex: intPtr(2),
				Options: []catalog.Option{{Value: "weak", Score: 30}, {Value: "strong", Score: 85}},
			},
			{
				ID: "hdhp_pct", Text: "High-deductible share", Type: catalog.TypeSlider,
				Min: 0, Max: 80, Default: 30, Diagnostic: true,
			},
		},
		Benchmarks: []catalog.Benchmark{
			{Segment: "gen", Label: "General", Overall: 55, Categories: []int{55, 50, 50}, TargetARDays: 35},
			{Segment: "duo", Label: "Two Track", Overall: 52, Categories: []int{55, 48, 40}},
		},
		Recommendations: []catalog.Recommendation{
			{
				ID: "rec_autopay", Title: "Offer autopay", CategoryIndex: 1, Priority: 80,
				Trigger: []catalog.Condition{{QuestionID: "pay_methods", Op: catalog.OpNotIncludes, Values: []string{"autopay"}}},
			},
			{
				ID: "rec_unset", Title: "Assess competitive position", CategoryIndex: 2, Priority: 60,
				Trigger: []catalog.Condition{{QuestionID: "comp_position", Op: catalog.OpNotEqualsAny, Values: []string{"strong"}}},
			},
			{
				ID: "rec_enroll", Title: "Grow autopay enrollment", CategoryIndex: 1, Priority: 70,
				Trigger: []catalog.Condition{
					{QuestionID: "pay_methods", Op: catalog.OpIncludes, Values: []string{"autopay"}},
					{QuestionID: "autopay_rate", Op: catalog.OpLessThan, Value: 30},
				},
			},
			{
				ID: "rec_comp", Title: "Strengthen reputation", CategoryIndex: 2, Priority: 90,
				Trigger: []catalog.Condition{{QuestionID: "comp_position", Op: catalog.OpEquals, Values: []string{"weak"}}},
			},
		},
		Projection: catalog.ProjectionConfig{
			Metrics: catalog.ProjectionMetrics{
				ARDaysReduction: 0.47, BadDebtReduction: 0.40, AutopayTarget: 0.40,
				PlanRecoveryRate: 0.50, StaffSavingsRate: 0.50,
			},
			Improvements: map[string]catalog.Improvement{
				"ops_quality":  {Boost: 25, MaxScore: 90, Description: "Automate operations"},
				"pay_methods":  {Boost: 30, MaxScore: 95, Description: "Add digital payment options"},
				"autopay_rate": {Boost: 40, MaxScore: 95, Description: "Drive autopay enrollment"},
			},
		},
		Forces: []catalog.Force{
			{
				ID: "digital_shift", Name: "Digital payment expectations", ShortName: "Digital", Weight: 0.6,
				QuestionMap: []catalog.ForceMapping{
					{QuestionID: "pay_methods", SubValues: []string{"autopay"}, Weight: 1.5, Label: "Autopay available"},
					{QuestionID: "autopay_rate", Weight: 1.0, Label: "Enrollment depth"},
				},
				Amplifier: &catalog.Amplifier{
					Kind: catalog.AmpSlider, QuestionID: "hdhp_pct",
					Base: 0.7, Slope: 0.75, Scale: 100, DefaultVal: 30,
				},
			},
			{
				ID: "staff_dependency", Name: "Labor cost pressure", ShortName: "Labor", Weight: 0.4,
				QuestionMap: []catalog.ForceMapping{
					{QuestionID: "ops_process", Weight: 1.0, Label: "Process automation"},
				},
				Amplifier: &catalog.Amplifier{
					Kind: catalog.AmpAnswerMap, QuestionID: "ops_process",
					ByAnswer: map[string]float64{"manual": 1.3}, Default: 1.0,
				},
			},
		},
		Stats: catalog.Stats{CreditCardFeeRate: 0.03, CardPaymentShare: 0.65, HDHPGrowthRate: 0.22},
		BadDebtRates: catalog.BadDebtRates{
			"write_off_high": 0.06, "chase_manual": 0.04,
		},
		StaffCosts: catalog.StaffCosts{"part_of_roles": 30000},
	}
	c, err := catalog.New(base)
	if err != nil {
		t.Fatalf("full catalog invalid: %v", err)
	}
	return c
}

func TestSegmentIDPrimaryKey(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	if got := e.SegmentID(AnswerSet{"practice_type": "duo"}); got != "duo" {
		t.Errorf("expected duo, got %q", got)
	}
}

func TestSegmentIDAlias(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	if got := e.SegmentID(AnswerSet{"facility_type": "gen"}); got != "gen" {
		t.Errorf("expected gen via alias, got %q", got)
	}
}

func TestSegmentIDUnrouted(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	if got := e.SegmentID(AnswerSet{}); got != "" {
		t.Errorf("expected empty segment before routing, got %q", got)
	}
}

func TestUnknownSegmentFallsBackToDefault(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger())
	scores := e.CalculateScores(AnswerSet{"practice_type": "XX", "ops_quality": "high"})
	if scores.Segment != "gen" {
		t.Errorf("expected fallback segment GEN, got %q", scores.Segment)
	}
}

func TestWithNeutralScore(t *testing.T) {
	e := NewEngine(basicCatalog(t), discardLogger(), WithNeutralScore(0))
	scores := e.CalculateScores(AnswerSet{"practice_type": "gen"})
	for i, c := range scores.Categories {
		if c != 0 {
			t.Errorf("category %d: expected neutral override 0, got %d", i, c)
		}
	}
}
