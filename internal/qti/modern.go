package qti

import "github.com/google/uuid"

// Interaction elements the modern pathway recognizes inside an item body,
// and the raw type each one implies.
var modernInteractions = []struct {
	element string
	qtype   string
}{
	{"choiceInteraction", "multiple_choice_question"},
	{"extendedTextInteraction", "essay_question"},
	{"textEntryInteraction", "short_answer_question"},
}

// parseModern handles assessment-rooted bodies: title attribute on the root,
// direct <item> children only, no section nesting.
func parseModern(root *element, resID, resTitle string) Result {
	res := Result{Kind: DocModern}

	quiz := Quiz{ID: resID, Title: resTitle}
	if t := root.attr("title"); t != "" {
		quiz.Title = t
	}

	for _, it := range root.childrenNamed("item") {
		out := modernItem(it)
		res.Outcomes = append(res.Outcomes, out)
		if out.OK {
			quiz.Questions = append(quiz.Questions, out.Question)
		}
	}
	res.Quiz = quiz
	return res
}

func modernItem(it *element) ItemOutcome {
	q := Question{
		ID:     it.attr("identifier"),
		Title:  it.attr("title"),
		Points: 1,
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}

	body := it.child("itemBody")
	q.Text = body.find("prompt").deepText()

	// Type is inferred purely from which interaction is present; none of
	// them leaves the type empty, which downstream treats as free text.
	var interaction *element
	for _, mi := range modernInteractions {
		if el := body.find(mi.element); el != nil {
			interaction = el
			q.Type = mi.qtype
			break
		}
	}

	if q.Type == "multiple_choice_question" {
		for _, sc := range interaction.childrenNamed("simpleChoice") {
			id := sc.attr("identifier")
			if id == "" {
				continue
			}
			q.Choices = append(q.Choices, Choice{ID: id, Text: sc.deepText()})
		}
		// same rule as the legacy pathway: a choice interaction with no
		// identified choices cannot render, so the item is skipped
		if len(q.Choices) == 0 {
			return ItemOutcome{Question: q, Reason: "choice item " + q.ID + " has no usable choices"}
		}
	}

	q.Correct = modernCorrectAnswer(it)
	return ItemOutcome{Question: q, OK: true}
}

// modernCorrectAnswer reads responseDeclaration/correctResponse values.
// Exactly one value is a scalar answer; several become a set. The question
// type is deliberately not re-labelled to a multi-answer kind in the
// multi-value case: upstream grading semantics for it are undefined, so the
// mismatch is surfaced to consumers rather than silently patched.
func modernCorrectAnswer(it *element) CorrectAnswer {
	cr := it.child("responseDeclaration").child("correctResponse")
	if cr == nil {
		return NoAnswer()
	}
	var values []string
	for _, v := range cr.childrenNamed("value") {
		values = append(values, v.text())
	}
	switch len(values) {
	case 0:
		return NoAnswer()
	case 1:
		return SingleAnswer(values[0])
	default:
		return AnswerSetOf(values)
	}
}
