// Package qti parses the two quiz-body vocabularies found in Schoology
// exports (questestinterop-rooted QTI 1.2 and assessment-rooted exports)
// into one normalized quiz model.
package qti

import "encoding/json"

// Quiz is the normalized output of one parsed quiz body. Immutable after
// parse; the caller owns it.
type Quiz struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// Question is one normalized item. Type carries the schema's raw type string
// ("multiple_choice_question", ...); empty or unrecognized values are kept
// as-is and treated as free-text downstream, never an error. Kind() maps it
// onto the closed set.
type Question struct {
	ID      string        `json:"id"`
	Title   string        `json:"title,omitempty"`
	Type    string        `json:"type,omitempty"`
	Text    string        `json:"text,omitempty"`
	Choices []Choice      `json:"choices,omitempty"`
	Correct CorrectAnswer `json:"correct_answer"`
	Points  int           `json:"points"`
}

type Choice struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionType is the closed set the form collaborator maps to widgets.
type QuestionType string

const (
	TypeMultipleChoice  QuestionType = "multiple_choice"
	TypeMultipleAnswers QuestionType = "multiple_answers"
	TypeEssay           QuestionType = "essay"
	TypeShortAnswer     QuestionType = "short_answer"
	TypeTrueFalse       QuestionType = "true_false"
	TypeUnknown         QuestionType = "unknown"
)

// Kind maps the raw schema type onto the closed set. Anything unrecognized,
// including the empty string, is TypeUnknown.
func (q Question) Kind() QuestionType {
	switch q.Type {
	case "multiple_choice_question":
		return TypeMultipleChoice
	case "multiple_answers_question":
		return TypeMultipleAnswers
	case "essay_question":
		return TypeEssay
	case "short_answer_question":
		return TypeShortAnswer
	case "true_false_question":
		return TypeTrueFalse
	default:
		return TypeUnknown
	}
}

// AnswerKind discriminates the CorrectAnswer union.
type AnswerKind int

const (
	AnswerAbsent AnswerKind = iota
	AnswerSingle
	AnswerSet
)

// CorrectAnswer is absent, a single choice id, or a set of choice ids. The
// ids are not validated against the question's choices at parse time; they
// may reference ids no choice carries, and consumers must tolerate that.
type CorrectAnswer struct {
	kind   AnswerKind
	single string
	set    []string
}

func NoAnswer() CorrectAnswer { return CorrectAnswer{} }

func SingleAnswer(id string) CorrectAnswer {
	return CorrectAnswer{kind: AnswerSingle, single: id}
}

// AnswerSetOf builds a set answer, deduplicating while keeping first-seen
// order. Sets are order-independent; the order is kept only for stable output.
func AnswerSetOf(ids []string) CorrectAnswer {
	seen := make(map[string]bool, len(ids))
	var set []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		set = append(set, id)
	}
	return CorrectAnswer{kind: AnswerSet, set: set}
}

func (a CorrectAnswer) Kind() AnswerKind { return a.kind }
func (a CorrectAnswer) IsAbsent() bool   { return a.kind == AnswerAbsent }

// Value returns the single correct choice id.
func (a CorrectAnswer) Value() (string, bool) {
	return a.single, a.kind == AnswerSingle
}

// Values returns the correct choice id set.
func (a CorrectAnswer) Values() ([]string, bool) {
	return a.set, a.kind == AnswerSet
}

// Contains reports whether the id is a correct answer under any kind.
func (a CorrectAnswer) Contains(id string) bool {
	switch a.kind {
	case AnswerSingle:
		return a.single == id
	case AnswerSet:
		for _, v := range a.set {
			if v == id {
				return true
			}
		}
	}
	return false
}

// MarshalJSON flattens the union: null, a string, or an array of strings.
func (a CorrectAnswer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AnswerSingle:
		return json.Marshal(a.single)
	case AnswerSet:
		return json.Marshal(a.set)
	default:
		return []byte("null"), nil
	}
}
