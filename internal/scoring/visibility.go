package scoring

import "github.com/clearbill/assess/internal/catalog"

// VisibleQuestions filters the catalog to the questions that should be shown
// for the current answers, in catalog order. Until the routing answer exists
// only routing questions are returned. Conditional rule kinds on a question
// are AND-ed; an unset dependent answer fails every show-if kind.
func (e *Engine) VisibleQuestions(answers AnswerSet) []*catalog.Question {
	segment := e.SegmentID(answers)

	var visible []*catalog.Question
	for i := range e.catalog.Questions {
		q := &e.catalog.Questions[i]
		if q.Routing {
			if segment == "" {
				visible = append(visible, q)
			}
			continue
		}
		if segment == "" {
			continue
		}
		if !q.AppliesTo(segment) {
			continue
		}
		if q.Conditional != nil && !e.conditionalVisible(q.Conditional, answers) {
			continue
		}
		visible = append(visible, q)
	}
	return visible
}

func (e *Engine) conditionalVisible(c *catalog.Conditional, answers AnswerSet) bool {
	if c.ShowIfEquals != "" {
		if answers.StringOr(c.QuestionID, "") != c.ShowIfEquals {
			return false
		}
	}
	if c.ShowIfIncludes != "" {
		if !answers.Includes(c.QuestionID, c.ShowIfIncludes) {
			return false
		}
	}
	if len(c.ShowIfIncludesAny) > 0 {
		if !answers.IncludesAny(c.QuestionID, c.ShowIfIncludesAny) {
			return false
		}
	}
	if len(c.HideIfIncludesAny) > 0 {
		if answers.IncludesAny(c.QuestionID, c.HideIfIncludesAny) {
			return false
		}
	}
	if c.SkipIfOption != "" {
		if answers.StringOr(c.QuestionID, "") == c.SkipIfOption {
			return false
		}
	}
	return true
}
