package qti_test

import (
	"testing"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/qti"
)

func TestParse_UnsupportedRootDegradesToPlaceholder(t *testing.T) {
	res, err := qti.Parse([]byte(`<survey><q/></survey>`), "res1", "Survey Title")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if res.Kind != qti.DocUnsupported {
		t.Fatalf("kind = %v", res.Kind)
	}
	if res.Quiz.ID != "res1" || res.Quiz.Title != "Survey Title" || len(res.Quiz.Questions) != 0 {
		t.Fatalf("quiz = %+v, want empty placeholder with title kept", res.Quiz)
	}
}

func TestParse_MalformedXMLFails(t *testing.T) {
	if _, err := qti.Parse([]byte(`<questestinterop><assessment>`), "r", "t"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := qti.Parse(nil, "r", "t"); err == nil {
		t.Fatal("expected error for empty body")
	}
}

func TestQuestionKind_ClosedSet(t *testing.T) {
	cases := map[string]qti.QuestionType{
		"multiple_choice_question":  qti.TypeMultipleChoice,
		"multiple_answers_question": qti.TypeMultipleAnswers,
		"essay_question":            qti.TypeEssay,
		"short_answer_question":     qti.TypeShortAnswer,
		"true_false_question":       qti.TypeTrueFalse,
		"":                          qti.TypeUnknown,
		"matching_question":         qti.TypeUnknown,
	}
	for raw, want := range cases {
		if got := (qti.Question{Type: raw}).Kind(); got != want {
			t.Errorf("Kind(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestCorrectAnswer_Union(t *testing.T) {
	if !qti.NoAnswer().IsAbsent() {
		t.Error("NoAnswer should be absent")
	}
	single := qti.SingleAnswer("A")
	if v, ok := single.Value(); !ok || v != "A" {
		t.Errorf("single = %q ok=%v", v, ok)
	}
	if _, ok := single.Values(); ok {
		t.Error("single should not expose a set")
	}
	set := qti.AnswerSetOf([]string{"A", "B", "A"})
	vs, ok := set.Values()
	if !ok || len(vs) != 2 {
		t.Errorf("set = %v ok=%v, want deduplicated 2", vs, ok)
	}
	if !set.Contains("B") || set.Contains("C") {
		t.Error("Contains misbehaves")
	}
}
