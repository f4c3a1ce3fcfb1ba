package catalog

// QuestionType determines how a raw answer value maps to a score.
type QuestionType string

const (
	TypeSingle   QuestionType = "single"
	TypeMulti    QuestionType = "multi"
	TypeSlider   QuestionType = "slider"
	TypeNumber   QuestionType = "number"
	TypeCurrency QuestionType = "currency"
)

// Option is one selectable choice on a single or multi question. Single
// questions use Score; multi questions use Points.
type Option struct {
	Value  string `yaml:"value" json:"value"`
	Label  string `yaml:"label" json:"label"`
	Score  int    `yaml:"score,omitempty" json:"score,omitempty"`
	Points int    `yaml:"points,omitempty" json:"points,omitempty"`
}

// ScoreBand maps a numeric answer at or above Min to a fixed score. Bands are
// evaluated in order; the first match wins. They replace the per-question
// scoring closures of earlier catalog revisions with data.
type ScoreBand struct {
	Min   float64 `yaml:"min" json:"min"`
	Score int     `yaml:"score" json:"score"`
}

// Conditional controls whether a question is visible given the answer to
// another question. When several rule kinds are set they are AND-ed: all must
// pass for the question to be shown. A dependent answer that has never been
// set fails every show-if kind and passes every hide-if kind.
type Conditional struct {
	QuestionID        string   `yaml:"question_id" json:"question_id"`
	ShowIfEquals      string   `yaml:"show_if_equals,omitempty" json:"show_if_equals,omitempty"`
	ShowIfIncludes    string   `yaml:"show_if_includes,omitempty" json:"show_if_includes,omitempty"`
	ShowIfIncludesAny []string `yaml:"show_if_includes_any,omitempty" json:"show_if_includes_any,omitempty"`
	HideIfIncludesAny []string `yaml:"hide_if_includes_any,omitempty" json:"hide_if_includes_any,omitempty"`
	SkipIfOption      string   `yaml:"skip_if_option,omitempty" json:"skip_if_option,omitempty"`
}

// AutoScore supplies a synthetic score for a question that is not visible, so
// that category aggregation does not simply ignore it. WhenHidden applies
// whenever the conditional hides the question; WhenParentIs applies only when
// the parent question's actual answer is one of the listed values.
type AutoScore struct {
	WhenHidden   bool     `yaml:"when_hidden,omitempty" json:"when_hidden,omitempty"`
	WhenParentIs []string `yaml:"when_parent_is,omitempty" json:"when_parent_is,omitempty"`
	Score        int      `yaml:"score" json:"score"`
}

// ExclusiveOption short-circuits additive multi scoring: when its value is
// present in the answer array the question scores Score regardless of what
// else is selected.
type ExclusiveOption struct {
	Value string `yaml:"value" json:"value"`
	Score int    `yaml:"score" json:"score"`
}

// Question is one immutable catalog entry.
type Question struct {
	ID       string       `yaml:"id" json:"id"`
	Text     string       `yaml:"text" json:"text"`
	HelpText string       `yaml:"help_text,omitempty" json:"help_text,omitempty"`
	Type     QuestionType `yaml:"type" json:"type"`
	Segments []string     `yaml:"segments" json:"segments"`

	// CategoryIndex assigns the full score to one category. CategoryWeights,
	// when present, overrides it and splits the score across categories by
	// index-aligned fractional weight.
	CategoryIndex   *int      `yaml:"category_index,omitempty" json:"category_index,omitempty"`
	CategoryWeights []float64 `yaml:"category_weights,omitempty" json:"category_weights,omitempty"`

	Options []Option `yaml:"options,omitempty" json:"options,omitempty"`

	// Slider / currency bounds.
	Min     float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max     float64 `yaml:"max,omitempty" json:"max,omitempty"`
	Step    float64 `yaml:"step,omitempty" json:"step,omitempty"`
	Default float64 `yaml:"default,omitempty" json:"default,omitempty"`
	Unit    string  `yaml:"unit,omitempty" json:"unit,omitempty"`

	MaxScore   int         `yaml:"max_score,omitempty" json:"max_score,omitempty"`
	ScoreBands []ScoreBand `yaml:"score_bands,omitempty" json:"score_bands,omitempty"`

	Diagnostic  bool `yaml:"diagnostic,omitempty" json:"diagnostic,omitempty"`
	Routing     bool `yaml:"routing,omitempty" json:"routing,omitempty"`
	SubQuestion bool `yaml:"sub_question,omitempty" json:"sub_question,omitempty"`
	Featured    bool `yaml:"featured,omitempty" json:"featured,omitempty"`

	Conditional     *Conditional     `yaml:"conditional,omitempty" json:"conditional,omitempty"`
	AutoScore       *AutoScore       `yaml:"auto_score,omitempty" json:"auto_score,omitempty"`
	ExclusiveOption *ExclusiveOption `yaml:"exclusive_option,omitempty" json:"exclusive_option,omitempty"`

	Context string `yaml:"context,omitempty" json:"context,omitempty"`
}

// Scorable reports whether the question can ever contribute to category
// scores. Diagnostic and routing questions never do.
func (q *Question) Scorable() bool {
	return !q.Diagnostic && !q.Routing
}

// CrossCategory reports whether the question splits its score across
// multiple categories.
func (q *Question) CrossCategory() bool {
	return len(q.CategoryWeights) > 0
}

// AppliesTo reports whether the question belongs to the given segment.
// A question with no segment list applies everywhere.
func (q *Question) AppliesTo(segment string) bool {
	if len(q.Segments) == 0 {
		return true
	}
	for _, s := range q.Segments {
		if s == segment {
			return true
		}
	}
	return false
}

// OptionByValue looks up an option by value, falling back to label match for
// catalogs that predate stable option values.
func (q *Question) OptionByValue(v string) (Option, bool) {
	for _, o := range q.Options {
		if o.Value == v {
			return o, true
		}
	}
	for _, o := range q.Options {
		if o.Label == v {
			return o, true
		}
	}
	return Option{}, false
}

// Segment is one questionnaire track with its category weighting.
type Segment struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// CategoryWeights must sum to 1. Two-category segments carry an
	// authoritative zero in the disabled slot.
	CategoryWeights  []float64 `yaml:"category_weights" json:"category_weights"`
	UseTwoCategories bool      `yaml:"use_two_categories,omitempty" json:"use_two_categories,omitempty"`
}

// ActiveCategories returns the category indices that participate in scoring
// for this segment. This is the single place the two-category rule lives;
// every consumer that iterates categories goes through it.
func (s *Segment) ActiveCategories() []int {
	active := make([]int, 0, len(s.CategoryWeights))
	for i := range s.CategoryWeights {
		if s.CategoryActive(i) {
			active = append(active, i)
		}
	}
	return active
}

// CategoryActive reports whether the given category index participates in
// scoring for this segment.
func (s *Segment) CategoryActive(i int) bool {
	if i < 0 || i >= len(s.CategoryWeights) {
		return false
	}
	if s.UseTwoCategories && s.CategoryWeights[i] == 0 {
		return false
	}
	return true
}

// Benchmark is the static industry comparison row for one segment.
type Benchmark struct {
	Segment        string  `yaml:"segment" json:"segment"`
	Label          string  `yaml:"label" json:"label"`
	Overall        int     `yaml:"overall" json:"overall"`
	Categories     []int   `yaml:"categories" json:"categories"`
	ARDays         int     `yaml:"ar_days,omitempty" json:"ar_days,omitempty"`
	TargetARDays   int     `yaml:"target_ar_days,omitempty" json:"target_ar_days,omitempty"`
	CollectionRate float64 `yaml:"collection_rate,omitempty" json:"collection_rate,omitempty"`
	BadDebtRate    float64 `yaml:"bad_debt_rate,omitempty" json:"bad_debt_rate,omitempty"`
}

// CondOp is a trigger condition operator. Operators that negate membership
// (not_includes, not_equals_any) evaluate true against an unset answer; the
// rest evaluate false. That asymmetry is load-bearing: it decides which
// recommendations surface before a question has been answered.
type CondOp string

const (
	OpIncludes       CondOp = "includes"
	OpNotIncludes    CondOp = "not_includes"
	OpNotIncludesAll CondOp = "not_includes_all"
	OpIncludesAny    CondOp = "includes_any"
	OpEquals         CondOp = "equals"
	OpEqualsAny      CondOp = "equals_any"
	OpNotEqualsAny   CondOp = "not_equals_any"
	OpLessThan       CondOp = "less_than"
)

// Condition is one declarative trigger predicate clause.
type Condition struct {
	QuestionID string   `yaml:"question_id" json:"question_id"`
	Op         CondOp   `yaml:"op" json:"op"`
	Values     []string `yaml:"values,omitempty" json:"values,omitempty"`
	Value      float64  `yaml:"value,omitempty" json:"value,omitempty"`
}

// Recommendation is one entry in the static recommendation table. Trigger
// clauses are AND-ed.
type Recommendation struct {
	ID              string      `yaml:"id" json:"id"`
	Title           string      `yaml:"title" json:"title"`
	Description     string      `yaml:"description" json:"description"`
	CategoryIndex   int         `yaml:"category_index" json:"category_index"`
	Priority        int         `yaml:"priority" json:"priority"`
	Impact          string      `yaml:"impact" json:"impact"`
	Segments        []string    `yaml:"segments,omitempty" json:"segments,omitempty"`
	Trigger         []Condition `yaml:"trigger" json:"trigger"`
	FinancialImpact string      `yaml:"financial_impact,omitempty" json:"financial_impact,omitempty"`
	Feature         string      `yaml:"feature,omitempty" json:"feature,omitempty"`
	SourceRef       int         `yaml:"source_ref,omitempty" json:"source_ref,omitempty"`
}

// AppliesTo reports whether the recommendation is available for the segment.
func (r *Recommendation) AppliesTo(segment string) bool {
	if len(r.Segments) == 0 {
		return true
	}
	for _, s := range r.Segments {
		if s == segment {
			return true
		}
	}
	return false
}

// Improvement is a per-question projection boost with a cap.
type Improvement struct {
	Boost       int    `yaml:"boost" json:"boost"`
	MaxScore    int    `yaml:"max_score" json:"max_score"`
	Description string `yaml:"description" json:"description"`
	SourceRef   int    `yaml:"source_ref,omitempty" json:"source_ref,omitempty"`
}

// ProjectionMetrics are the fixed with-product improvement rates used by the
// financial insight calculations.
type ProjectionMetrics struct {
	ARDaysReduction  float64 `yaml:"ar_days_reduction" json:"ar_days_reduction"`
	BadDebtReduction float64 `yaml:"bad_debt_reduction" json:"bad_debt_reduction"`
	AutopayTarget    float64 `yaml:"autopay_target" json:"autopay_target"`
	PlanRecoveryRate float64 `yaml:"plan_recovery_rate" json:"plan_recovery_rate"`
	StaffSavingsRate float64 `yaml:"staff_savings_rate" json:"staff_savings_rate"`
}

// ProjectionConfig holds the metrics plus the per-question improvement table.
type ProjectionConfig struct {
	Metrics      ProjectionMetrics      `yaml:"metrics" json:"metrics"`
	Improvements map[string]Improvement `yaml:"improvements" json:"improvements"`
}

// AmplifierKind selects how a force amplifier derives its multiplier.
type AmplifierKind string

const (
	// AmpSlider computes Base + Slope*(value/scale) from a numeric answer.
	AmpSlider AmplifierKind = "slider"
	// AmpAnswerMap looks the answer up in ByAnswer, falling back to Default.
	AmpAnswerMap AmplifierKind = "answer_map"
)

// Amplifier scales a force's exposure by the respondent's specific situation.
type Amplifier struct {
	Kind       AmplifierKind      `yaml:"kind" json:"kind"`
	QuestionID string             `yaml:"question_id" json:"question_id"`
	Base       float64            `yaml:"base,omitempty" json:"base,omitempty"`
	Slope      float64            `yaml:"slope,omitempty" json:"slope,omitempty"`
	Scale      float64            `yaml:"scale,omitempty" json:"scale,omitempty"`
	DefaultVal float64            `yaml:"default_value,omitempty" json:"default_value,omitempty"`
	ByAnswer   map[string]float64 `yaml:"by_answer,omitempty" json:"by_answer,omitempty"`
	Default    float64            `yaml:"default,omitempty" json:"default,omitempty"`
}

// ForceMapping ties a force to one question (or one multi-option subset) that
// measures preparedness against it.
type ForceMapping struct {
	QuestionID string   `yaml:"question_id" json:"question_id"`
	SubValues  []string `yaml:"sub_values,omitempty" json:"sub_values,omitempty"`
	Weight     float64  `yaml:"weight" json:"weight"`
	Label      string   `yaml:"label" json:"label"`
}

// Force is one external market pressure in the resiliency model.
type Force struct {
	ID          string         `yaml:"id" json:"id"`
	Name        string         `yaml:"name" json:"name"`
	ShortName   string         `yaml:"short_name" json:"short_name"`
	Weight      float64        `yaml:"weight" json:"weight"`
	Description string         `yaml:"description,omitempty" json:"description,omitempty"`
	Trend       string         `yaml:"trend,omitempty" json:"trend,omitempty"`
	QuestionMap []ForceMapping `yaml:"question_map" json:"question_map"`
	Amplifier   *Amplifier     `yaml:"amplifier,omitempty" json:"amplifier,omitempty"`
}

// Stats carries the industry figures the insight calculations depend on.
type Stats struct {
	CreditCardFeeRate float64 `yaml:"credit_card_fee_rate" json:"credit_card_fee_rate"`
	CardPaymentShare  float64 `yaml:"card_payment_share" json:"card_payment_share"`
	HDHPGrowthRate    float64 `yaml:"hdhp_growth_rate" json:"hdhp_growth_rate"`
	AvgDeductible     int     `yaml:"avg_deductible,omitempty" json:"avg_deductible,omitempty"`
	PaperCost         float64 `yaml:"paper_statement_cost,omitempty" json:"paper_statement_cost,omitempty"`
}

// BadDebtRates maps an unpaid-balance answer to an assumed write-off rate.
type BadDebtRates map[string]float64

// StaffCosts maps a staffing-burden answer to an assumed annual billing
// labor cost.
type StaffCosts map[string]int
