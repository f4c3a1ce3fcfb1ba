package scoring

import "github.com/clearbill/assess/internal/catalog"

// contributionKind is the per-question scoring state: a question either
// scored while visible, contributed a synthetic auto-score while hidden, or
// contributed nothing. Computed once per question per evaluation and consumed
// uniformly by the aggregator and the projection estimator.
type contributionKind int

const (
	contribNone contributionKind = iota
	contribVisible
	contribHiddenAuto
)

type contribution struct {
	kind  contributionKind
	score int
}

// contributionFor resolves one question's scoring state for the given
// answers. visible is the id set of currently visible questions.
func contributionFor(q *catalog.Question, answers AnswerSet, visible map[string]bool) contribution {
	if !q.Scorable() {
		return contribution{kind: contribNone}
	}

	if visible[q.ID] {
		if score, ok := ScoreQuestion(q, answers[q.ID]); ok {
			return contribution{kind: contribVisible, score: score}
		}
		return contribution{kind: contribNone}
	}

	// Hidden: deliberately absent from scoring unless an auto-score rule
	// applies.
	if q.AutoScore == nil || q.Conditional == nil {
		return contribution{kind: contribNone}
	}
	if q.AutoScore.WhenHidden {
		return contribution{kind: contribHiddenAuto, score: q.AutoScore.Score}
	}
	if len(q.AutoScore.WhenParentIs) > 0 {
		parent := answers.StringOr(q.Conditional.QuestionID, "")
		for _, v := range q.AutoScore.WhenParentIs {
			if parent == v {
				return contribution{kind: contribHiddenAuto, score: q.AutoScore.Score}
			}
		}
	}
	return contribution{kind: contribNone}
}
