// Package forms is the form-creation collaborator: it turns a normalized
// quiz into one hosted form and reports where that form lives.
package forms

import (
	"context"
	"time"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/qti"
)

// Record describes one created form, in the shape the results log persists.
type Record struct {
	FormID        string    `json:"form_id"`
	ViewURL       string    `json:"view_url"`
	EditURL       string    `json:"edit_url"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Service creates one form per quiz.
type Service interface {
	CreateForm(ctx context.Context, quiz qti.Quiz) (Record, error)
}

// WidgetKind is the answer widget a question renders as.
type WidgetKind string

const (
	WidgetSingleSelect WidgetKind = "single_select"
	WidgetMultiSelect  WidgetKind = "multi_select"
	WidgetLongText     WidgetKind = "long_text"
	WidgetShortText    WidgetKind = "short_text"
)

// WidgetFor maps every question kind to its widget. true_false renders as a
// single-select seeded with exactly "True"/"False"; unknown falls back to
// long free text.
func WidgetFor(kind qti.QuestionType) WidgetKind {
	switch kind {
	case qti.TypeMultipleChoice:
		return WidgetSingleSelect
	case qti.TypeMultipleAnswers:
		return WidgetMultiSelect
	case qti.TypeEssay:
		return WidgetLongText
	case qti.TypeShortAnswer:
		return WidgetShortText
	case qti.TypeTrueFalse:
		return WidgetSingleSelect
	case qti.TypeUnknown:
		return WidgetLongText
	default:
		return WidgetLongText
	}
}

// TrueFalseOptions are the seeded options for a true_false question; the
// correct one is matched by the literal correctAnswer string "true"/"false".
var TrueFalseOptions = []string{"True", "False"}

// TrueFalseCorrect maps a true_false answer value onto the seeded option,
// or "" when the value matches neither literal.
func TrueFalseCorrect(a qti.CorrectAnswer) string {
	v, ok := a.Value()
	if !ok {
		return ""
	}
	switch v {
	case "true":
		return "True"
	case "false":
		return "False"
	}
	return ""
}

// Graded reports whether the form should be marked graded: true iff at
// least one question carries a non-absent correct answer.
func Graded(quiz qti.Quiz) bool {
	for _, q := range quiz.Questions {
		if !q.Correct.IsAbsent() {
			return true
		}
	}
	return false
}
