package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/clearbill/assess/internal/catalog"
)

// Preparedness constants for the force model. Sub-value checks are binary:
// either the capability is offered or it isn't.
const (
	prepOffered    = 85
	prepNotOffered = 5
	prepUnanswered = 30

	// projectedAmplifierDamping shrinks amplifiers in the projected view,
	// floored at 1.0 so damping never turns an amplifier into protection.
	projectedAmplifierDamping = 0.7
	projectedPrepDefault      = 50
)

// ForceScore is one external force's evaluated exposure.
type ForceScore struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	ShortName         string  `json:"short_name"`
	Weight            float64 `json:"weight"`
	Description       string  `json:"description,omitempty"`
	Trend             string  `json:"trend,omitempty"`
	Preparedness      int     `json:"preparedness"`
	Exposure          int     `json:"exposure"`
	AmplifiedExposure int     `json:"amplified_exposure"`
	Vulnerability     int     `json:"vulnerability"`
	Level             string  `json:"level"`
}

// ResiliencyIndex is the composite five-force vulnerability model, current
// and projected.
type ResiliencyIndex struct {
	Index                  int          `json:"index"`
	Level                  string       `json:"level"`
	CompositeVulnerability int          `json:"composite_vulnerability"`
	Forces                 []ForceScore `json:"forces"`
	ProjectedIndex         int          `json:"projected_index"`
	ProjectedForces        []ForceScore `json:"projected_forces"`
	ProjectedImprovement   int          `json:"projected_improvement"`
	Summary                string       `json:"summary"`
	MostVulnerable         *ForceScore  `json:"most_vulnerable,omitempty"`
	MostProtected          *ForceScore  `json:"most_protected,omitempty"`
}

// CalculateResiliencyIndex scores the respondent's exposure to each
// configured external force and composes them into a 0-100 index, where 100
// is fully protected.
func (e *Engine) CalculateResiliencyIndex(answers AnswerSet) ResiliencyIndex {
	visible := e.visibleSet(answers)

	var out ResiliencyIndex
	composite := 0
	for i := range e.catalog.Forces {
		f := &e.catalog.Forces[i]
		prep := e.forcePreparedness(f, answers, visible, false)
		exposure := 100 - prep
		amp := e.amplifierValue(f.Amplifier, answers)
		amplified := amplifyExposure(exposure, amp)
		vuln := int(math.Round(f.Weight * float64(amplified)))
		composite += vuln

		out.Forces = append(out.Forces, ForceScore{
			ID:                f.ID,
			Name:              f.Name,
			ShortName:         f.ShortName,
			Weight:            f.Weight,
			Description:       f.Description,
			Trend:             f.Trend,
			Preparedness:      prep,
			Exposure:          exposure,
			AmplifiedExposure: amplified,
			Vulnerability:     vuln,
			Level:             exposureLevel(amplified),
		})
	}

	out.CompositeVulnerability = composite
	out.Index = clampScore(100 - composite)
	out.Level = resiliencyLevel(out.Index)

	projected := 0
	for i := range e.catalog.Forces {
		f := &e.catalog.Forces[i]
		prep := e.forcePreparedness(f, answers, visible, true)
		exposure := 100 - prep
		amp := 1.0
		if f.Amplifier != nil {
			amp = math.Max(1.0, e.amplifierValue(f.Amplifier, answers)*projectedAmplifierDamping)
		}
		amplified := amplifyExposure(exposure, amp)
		vuln := int(math.Round(f.Weight * float64(amplified)))
		projected += vuln

		out.ProjectedForces = append(out.ProjectedForces, ForceScore{
			ID:                f.ID,
			Name:              f.Name,
			ShortName:         f.ShortName,
			Weight:            f.Weight,
			Preparedness:      prep,
			Exposure:          exposure,
			AmplifiedExposure: amplified,
			Vulnerability:     vuln,
			Level:             exposureLevel(amplified),
		})
	}
	out.ProjectedIndex = clampScore(100 - projected)
	out.ProjectedImprovement = out.ProjectedIndex - out.Index

	for i := range out.Forces {
		f := &out.Forces[i]
		if out.MostVulnerable == nil || f.AmplifiedExposure > out.MostVulnerable.AmplifiedExposure {
			out.MostVulnerable = f
		}
		if out.MostProtected == nil || f.AmplifiedExposure < out.MostProtected.AmplifiedExposure {
			out.MostProtected = f
		}
	}
	out.Summary = resiliencySummary(out.Index, out.MostVulnerable, out.MostProtected)
	return out
}

// forcePreparedness is the weighted average of the force's question mappings.
// projected applies the configured improvement boosts on top.
func (e *Engine) forcePreparedness(f *catalog.Force, answers AnswerSet, visible map[string]bool, projected bool) int {
	var sum, total float64
	for i := range f.QuestionMap {
		m := &f.QuestionMap[i]
		prep := e.mappingPreparedness(m, answers, visible)
		if projected {
			prep = e.projectedPreparedness(m, prep)
		}
		sum += float64(prep) * m.Weight
		total += m.Weight
	}
	if total == 0 {
		if projected {
			return projectedPrepDefault
		}
		return prepUnanswered
	}
	return int(math.Round(sum / total))
}

func (e *Engine) mappingPreparedness(m *catalog.ForceMapping, answers AnswerSet, visible map[string]bool) int {
	if len(m.SubValues) > 0 {
		selected, ok := answers.List(m.QuestionID)
		if !ok {
			return prepNotOffered
		}
		for _, sv := range m.SubValues {
			if !contains(selected, sv) {
				return prepNotOffered
			}
		}
		return prepOffered
	}

	q := e.catalog.Question(m.QuestionID)
	if q != nil {
		if score, ok := ScoreQuestion(q, answers[q.ID]); ok {
			return score
		}
		if q.AutoScore != nil && q.AutoScore.WhenHidden && !visible[q.ID] {
			return q.AutoScore.Score
		}
	}
	return prepUnanswered
}

// projectedPreparedness assumes the product closes the capability gaps:
// autopay and payment-plan sub-value checks become offered, and configured
// per-question boosts apply.
func (e *Engine) projectedPreparedness(m *catalog.ForceMapping, current int) int {
	for _, sv := range m.SubValues {
		if sv == "autopay" || sv == "payment_plan" {
			return prepOffered
		}
	}
	if imp, ok := e.catalog.Projection.Improvements[m.QuestionID]; ok {
		projected := current + imp.Boost
		if projected > imp.MaxScore {
			projected = imp.MaxScore
		}
		return projected
	}
	return current
}

func (e *Engine) amplifierValue(a *catalog.Amplifier, answers AnswerSet) float64 {
	if a == nil {
		return 1.0
	}
	switch a.Kind {
	case catalog.AmpSlider:
		value := answers.NumberOr(a.QuestionID, a.DefaultVal)
		scale := a.Scale
		if scale == 0 {
			scale = 1
		}
		return a.Base + a.Slope*(value/scale)
	case catalog.AmpAnswerMap:
		if s, ok := answers.String(a.QuestionID); ok {
			if v, found := a.ByAnswer[s]; found {
				return v
			}
		}
		if a.Default != 0 {
			return a.Default
		}
		return 1.0
	default:
		return 1.0
	}
}

func amplifyExposure(exposure int, amp float64) int {
	v := int(math.Round(float64(exposure) * amp))
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

func resiliencyLevel(index int) string {
	switch {
	case index >= 80:
		return "Highly Resilient"
	case index >= 65:
		return "Resilient"
	case index >= 45:
		return "Moderately Resilient"
	case index >= 25:
		return "Vulnerable"
	default:
		return "Highly Vulnerable"
	}
}

func exposureLevel(exposure int) string {
	switch {
	case exposure <= 20:
		return "Well Protected"
	case exposure <= 40:
		return "Moderately Protected"
	case exposure <= 60:
		return "Partially Exposed"
	case exposure <= 80:
		return "Significantly Exposed"
	default:
		return "Highly Vulnerable"
	}
}

func resiliencySummary(index int, mostVulnerable, mostProtected *ForceScore) string {
	if mostVulnerable == nil || mostProtected == nil {
		return ""
	}
	switch {
	case index >= 65:
		return fmt.Sprintf("Strong resilience against external market pressures. The strongest protection is against %s.",
			strings.ToLower(mostProtected.Name))
	case index >= 40:
		return fmt.Sprintf("Moderate resilience, with significant exposure to %s. Closing these gaps now protects revenue as market pressure accelerates.",
			strings.ToLower(mostVulnerable.Name))
	default:
		return fmt.Sprintf("Significant exposure to the market forces reshaping healthcare billing. The biggest vulnerability is %s, and these pressures are accelerating.",
			strings.ToLower(mostVulnerable.Name))
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
