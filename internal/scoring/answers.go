package scoring

// AnswerSet is the raw answer map supplied by the UI layer, keyed by question
// id. Values arrive as JSON-decoded scalars: string, []any (multi selections),
// or float64. The engine only reads it; ownership stays with the caller.
type AnswerSet map[string]any

// Has reports whether an answer has been recorded for the question.
func (a AnswerSet) Has(id string) bool {
	v, ok := a[id]
	return ok && v != nil
}

// String returns the scalar string answer for a question.
func (a AnswerSet) String(id string) (string, bool) {
	s, ok := a[id].(string)
	return s, ok
}

// StringOr returns the scalar string answer or a default.
func (a AnswerSet) StringOr(id, def string) string {
	if s, ok := a.String(id); ok {
		return s
	}
	return def
}

// List returns the multi-select answer for a question, normalizing both
// []string and JSON's []any shape.
func (a AnswerSet) List(id string) ([]string, bool) {
	switch v := a[id].(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

// Number returns the numeric answer for a question, normalizing the integer
// and float shapes JSON decoding produces.
func (a AnswerSet) Number(id string) (float64, bool) {
	switch v := a[id].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// NumberOr returns the numeric answer or a default.
func (a AnswerSet) NumberOr(id string, def float64) float64 {
	if n, ok := a.Number(id); ok {
		return n
	}
	return def
}

// Includes reports whether the answer contains the value: array answers by
// membership, scalar answers by equality. Unset answers include nothing.
func (a AnswerSet) Includes(id, value string) bool {
	if list, ok := a.List(id); ok {
		for _, v := range list {
			if v == value {
				return true
			}
		}
		return false
	}
	s, ok := a.String(id)
	return ok && s == value
}

// IncludesAny reports whether the answer intersects the value list.
func (a AnswerSet) IncludesAny(id string, values []string) bool {
	for _, v := range values {
		if a.Includes(id, v) {
			return true
		}
	}
	return false
}
