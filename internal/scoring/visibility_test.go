package scoring

import "testing"

func visibleIDs(e *Engine, answers AnswerSet) []string {
	var ids []string
	for _, q := range e.VisibleQuestions(answers) {
		ids = append(ids, q.ID)
	}
	return ids
}

func hasID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func TestOnlyRoutingBeforeSegment(t *testing.T) {
	e := NewEngine(fullCatalog(t), discardLogger())
	ids := visibleIDs(e, AnswerSet{})
	if len(ids) != 1 || ids[0] != "practice_type" {
		t.Errorf("expected only the routing question before segment choice, got %v", ids)
	}
}

func TestRoutingHiddenAfterSegment(t *testing.T) {
	e := NewEngine(fullCatalog(t), discardLogger())
	ids := visibleIDs(e, AnswerSet{"practice_type": "gen"})
	if hasID(ids, "practice_type") {
		t.Errorf("routing question should disappear once answered, got %v", ids)
	}
	if !hasID(ids, "ops_quality") || !hasID(ids, "pay_methods") {
		t.Errorf("segment questions should appear, got %v", ids)
	}
}

func TestConditionalHiddenUntilParentMatches(t *testing.T) {
	e := NewEngine(fullCatalog(t), discardLogger())

	ids := visibleIDs(e, AnswerSet{"practice_type": "gen"})
	if hasID(ids, "autopay_rate") {
		t.Error("conditional question visible before parent answered")
	}

	ids = visibleIDs(e, AnswerSet{"practice_type": "gen", "pay_methods": []string{"portal"}})
	if hasID(ids, "autopay_rate") {
		t.Error("conditional question visible without the required selection")
	}

	ids = visibleIDs(e, AnswerSet{"practice_type": "gen", "pay_methods": []string{"portal", "autopay"}})
	if !hasID(ids, "autopay_rate") {
		t.Error("conditional question should appear once parent includes the trigger value")
	}
}

func TestVisibilityStableUnderUnrelatedAnswers(t *testing.T) {
	e := NewEngine(fullCatalog(t), discardLogger())
	base := visibleIDs(e, AnswerSet{"practice_type": "gen", "pay_methods": []string{"autopay"}})
	more := visibleIDs(e, AnswerSet{
		"practice_type": "gen",
		"pay_methods":   []string{"autopay"},
		"ops_quality":   "mid",
		"comp_position": "weak",
	})
	for _, id := range base {
		if !hasID(more, id) {
			t.Errorf("question %s disappeared after unrelated answers", id)
		}
	}
}

func TestVisibleQuestionsCatalogOrder(t *testing.T) {
	e := NewEngine(fullCatalog(t), discardLogger())
	ids := visibleIDs(e, AnswerSet{"practice_type": "gen", "pay_methods": []string{"autopay"}})

	want := []string{"ops_quality", "ops_process", "pay_methods", "autopay_rate", "comp_position", "hdhp_pct"}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order mismatch at %d: expected %v, got %v", i, want, ids)
		}
	}
}
