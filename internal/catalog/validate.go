package catalog

import (
	"fmt"
	"math"
)

const weightTolerance = 0.001

// Validate checks the catalog for configuration errors. It is called once at
// load time so that a broken catalog fails fast instead of silently producing
// wrong scores.
func (c *Catalog) Validate() error {
	if c.SegmentKey == "" {
		return fmt.Errorf("segment_key is required")
	}
	if len(c.CategoryNames) == 0 {
		return fmt.Errorf("category_names is required")
	}
	if len(c.Segments) == 0 {
		return fmt.Errorf("at least one segment is required")
	}
	if _, ok := c.segmentsByID[c.DefaultSegment]; !ok {
		return fmt.Errorf("default_segment %q is not a known segment", c.DefaultSegment)
	}

	n := c.CategoryCount()

	for i := range c.Segments {
		if err := c.validateSegment(&c.Segments[i], n); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(c.Questions))
	for i := range c.Questions {
		q := &c.Questions[i]
		if seen[q.ID] {
			return fmt.Errorf("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if err := c.validateQuestion(q, n); err != nil {
			return err
		}
	}

	for i := range c.Benchmarks {
		b := &c.Benchmarks[i]
		if _, ok := c.segmentsByID[b.Segment]; !ok {
			return fmt.Errorf("benchmark for unknown segment %q", b.Segment)
		}
		if len(b.Categories) != n {
			return fmt.Errorf("benchmark %q: expected %d category values, got %d", b.Segment, n, len(b.Categories))
		}
	}
	if _, ok := c.benchmarksBy[c.DefaultSegment]; !ok {
		return fmt.Errorf("no benchmark row for default segment %q", c.DefaultSegment)
	}

	recSeen := make(map[string]bool, len(c.Recommendations))
	for i := range c.Recommendations {
		if err := c.validateRecommendation(&c.Recommendations[i], n, recSeen); err != nil {
			return err
		}
	}

	for id, imp := range c.Projection.Improvements {
		if c.questionsByID[id] == nil {
			return fmt.Errorf("projection improvement for unknown question %q", id)
		}
		if imp.Boost <= 0 {
			return fmt.Errorf("projection improvement %q: boost must be positive", id)
		}
		if imp.MaxScore < 0 || imp.MaxScore > 100 {
			return fmt.Errorf("projection improvement %q: max_score out of range", id)
		}
	}

	var forceSum float64
	for i := range c.Forces {
		f := &c.Forces[i]
		forceSum += f.Weight
		if err := c.validateForce(f); err != nil {
			return err
		}
	}
	if len(c.Forces) > 0 && math.Abs(forceSum-1.0) > weightTolerance {
		return fmt.Errorf("force weights sum to %.4f, must sum to 1.0", forceSum)
	}

	return nil
}

func (c *Catalog) validateSegment(s *Segment, categories int) error {
	if len(s.CategoryWeights) != categories {
		return fmt.Errorf("segment %q: expected %d category weights, got %d", s.ID, categories, len(s.CategoryWeights))
	}
	var sum float64
	zeros := 0
	for _, w := range s.CategoryWeights {
		if w < 0 {
			return fmt.Errorf("segment %q: negative category weight %f", s.ID, w)
		}
		if w == 0 {
			zeros++
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("segment %q: category weights sum to %.4f, must sum to 1.0", s.ID, sum)
	}
	if s.UseTwoCategories && zeros == 0 {
		return fmt.Errorf("segment %q: two-category segment needs a zero weight", s.ID)
	}
	return nil
}

func (c *Catalog) validateQuestion(q *Question, categories int) error {
	switch q.Type {
	case TypeSingle, TypeMulti, TypeSlider, TypeNumber, TypeCurrency:
	default:
		return fmt.Errorf("question %q: unknown type %q", q.ID, q.Type)
	}

	for _, seg := range q.Segments {
		if _, ok := c.segmentsByID[seg]; !ok {
			return fmt.Errorf("question %q: unknown segment %q", q.ID, seg)
		}
	}

	if q.Scorable() && q.Type != TypeNumber && q.Type != TypeCurrency {
		if q.CategoryIndex == nil && !q.CrossCategory() {
			return fmt.Errorf("question %q: scorable question needs category_index or category_weights", q.ID)
		}
	}
	if q.CategoryIndex != nil && (*q.CategoryIndex < 0 || *q.CategoryIndex >= categories) {
		return fmt.Errorf("question %q: category_index %d out of range", q.ID, *q.CategoryIndex)
	}
	if len(q.CategoryWeights) > categories {
		return fmt.Errorf("question %q: %d category weights for %d categories", q.ID, len(q.CategoryWeights), categories)
	}
	for _, w := range q.CategoryWeights {
		if w < 0 {
			return fmt.Errorf("question %q: negative category weight %f", q.ID, w)
		}
	}

	switch q.Type {
	case TypeSingle, TypeMulti:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q: %s question needs options", q.ID, q.Type)
		}
		vals := make(map[string]bool, len(q.Options))
		for _, o := range q.Options {
			if o.Value == "" {
				return fmt.Errorf("question %q: option with empty value", q.ID)
			}
			if vals[o.Value] {
				return fmt.Errorf("question %q: duplicate option value %q", q.ID, o.Value)
			}
			vals[o.Value] = true
		}
	case TypeSlider, TypeCurrency:
		if q.Max <= q.Min {
			return fmt.Errorf("question %q: max must exceed min", q.ID)
		}
	}

	for i := 1; i < len(q.ScoreBands); i++ {
		if q.ScoreBands[i].Min >= q.ScoreBands[i-1].Min {
			return fmt.Errorf("question %q: score bands must be in descending min order", q.ID)
		}
	}

	if q.Conditional != nil {
		dep := c.questionsByID[q.Conditional.QuestionID]
		if dep == nil {
			return fmt.Errorf("question %q: conditional references unknown question %q", q.ID, q.Conditional.QuestionID)
		}
		if dep.ID == q.ID {
			return fmt.Errorf("question %q: conditional references itself", q.ID)
		}
	}
	if q.AutoScore != nil {
		if q.Conditional == nil {
			return fmt.Errorf("question %q: auto_score without conditional", q.ID)
		}
		if !q.AutoScore.WhenHidden && len(q.AutoScore.WhenParentIs) == 0 {
			return fmt.Errorf("question %q: auto_score needs when_hidden or when_parent_is", q.ID)
		}
	}

	return nil
}

func (c *Catalog) validateRecommendation(r *Recommendation, categories int, seen map[string]bool) error {
	if seen[r.ID] {
		return fmt.Errorf("duplicate recommendation id %q", r.ID)
	}
	seen[r.ID] = true
	if r.CategoryIndex < 0 || r.CategoryIndex >= categories {
		return fmt.Errorf("recommendation %q: category_index %d out of range", r.ID, r.CategoryIndex)
	}
	if len(r.Trigger) == 0 {
		return fmt.Errorf("recommendation %q: empty trigger", r.ID)
	}
	for _, cond := range r.Trigger {
		if c.questionsByID[cond.QuestionID] == nil {
			return fmt.Errorf("recommendation %q: trigger references unknown question %q", r.ID, cond.QuestionID)
		}
		switch cond.Op {
		case OpIncludes, OpNotIncludes, OpNotIncludesAll, OpIncludesAny,
			OpEquals, OpEqualsAny, OpNotEqualsAny, OpLessThan:
		default:
			return fmt.Errorf("recommendation %q: unknown trigger op %q", r.ID, cond.Op)
		}
	}
	for _, seg := range r.Segments {
		if _, ok := c.segmentsByID[seg]; !ok {
			return fmt.Errorf("recommendation %q: unknown segment %q", r.ID, seg)
		}
	}
	return nil
}

func (c *Catalog) validateForce(f *Force) error {
	if f.Weight <= 0 {
		return fmt.Errorf("force %q: weight must be positive", f.ID)
	}
	if len(f.QuestionMap) == 0 {
		return fmt.Errorf("force %q: empty question map", f.ID)
	}
	for _, m := range f.QuestionMap {
		if c.questionsByID[m.QuestionID] == nil {
			return fmt.Errorf("force %q: maps unknown question %q", f.ID, m.QuestionID)
		}
		if m.Weight <= 0 {
			return fmt.Errorf("force %q: mapping %q weight must be positive", f.ID, m.QuestionID)
		}
	}
	if f.Amplifier != nil {
		switch f.Amplifier.Kind {
		case AmpSlider, AmpAnswerMap:
		default:
			return fmt.Errorf("force %q: unknown amplifier kind %q", f.ID, f.Amplifier.Kind)
		}
		if c.questionsByID[f.Amplifier.QuestionID] == nil {
			return fmt.Errorf("force %q: amplifier references unknown question %q", f.ID, f.Amplifier.QuestionID)
		}
	}
	return nil
}
