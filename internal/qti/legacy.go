package qti

import "github.com/google/uuid"

// parseLegacy handles questestinterop-rooted QTI 1.2 bodies. The quiz lives
// in a nested <assessment> direct child; without one the result degrades to
// a placeholder.
func parseLegacy(root *element, resID, resTitle string) Result {
	res := Result{Kind: DocLegacy}

	assessment := root.child("assessment")
	if assessment == nil {
		res.Quiz = Placeholder(resID, resTitle)
		return res
	}

	quiz := Quiz{ID: resID, Title: resTitle}
	if t := assessment.attr("title"); t != "" {
		quiz.Title = t
	}
	quiz.Description = legacyDescription(assessment)

	// Direct items first, then items one level inside <section> children.
	items := assessment.childrenNamed("item")
	for _, sec := range assessment.childrenNamed("section") {
		items = append(items, sec.childrenNamed("item")...)
	}

	for _, it := range items {
		out := legacyItem(it)
		res.Outcomes = append(res.Outcomes, out)
		if out.OK {
			quiz.Questions = append(quiz.Questions, out.Question)
		}
	}
	res.Quiz = quiz
	return res
}

// legacyDescription reads the first qmd_description metadata field directly
// under the assessment's qtimetadata block.
func legacyDescription(assessment *element) string {
	qm := assessment.child("qtimetadata")
	for _, f := range qm.childrenNamed("qtimetadatafield") {
		if f.child("fieldlabel").text() == "qmd_description" {
			return f.child("fieldentry").text()
		}
	}
	return ""
}

func legacyItem(it *element) ItemOutcome {
	q := Question{
		ID:     it.attr("ident"),
		Title:  it.attr("title"),
		Type:   legacyQuestionType(it),
		Points: 1,
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}

	presentation := it.child("presentation")
	q.Text = legacyItemText(presentation)
	q.Choices = legacyChoices(presentation)
	q.Correct = legacyCorrectAnswer(it, q.Type)

	// a choice item whose labels were all unusable cannot render a select
	// widget; skip it rather than emit an unanswerable question
	switch q.Kind() {
	case TypeMultipleChoice, TypeMultipleAnswers:
		if len(q.Choices) == 0 {
			return ItemOutcome{Question: q, Reason: "choice item " + q.ID + " has no usable choices"}
		}
	}
	return ItemOutcome{Question: q, OK: true}
}

// legacyQuestionType reads the question_type metadata field; empty when the
// item declares none. Unrecognized values are kept verbatim.
func legacyQuestionType(it *element) string {
	im := it.child("itemmetadata")
	qm := im.child("qtimetadata")
	for _, f := range qm.childrenNamed("qtimetadatafield") {
		if f.child("fieldlabel").text() == "question_type" {
			return f.child("fieldentry").text()
		}
	}
	return ""
}

// legacyItemText is the first material/mattext under the presentation.
func legacyItemText(presentation *element) string {
	for _, m := range presentation.findAll("material") {
		if mt := m.child("mattext"); mt != nil {
			return mt.deepText()
		}
	}
	return ""
}

// legacyChoices enumerates render_choice/response_label entries. Labels
// without an ident or without nested material/mattext are skipped.
func legacyChoices(presentation *element) []Choice {
	var out []Choice
	for _, rc := range presentation.findAll("render_choice") {
		for _, rl := range rc.childrenNamed("response_label") {
			id := rl.attr("ident")
			if id == "" {
				continue
			}
			mt := rl.child("material").child("mattext")
			if mt == nil {
				continue
			}
			out = append(out, Choice{ID: id, Text: mt.deepText()})
		}
	}
	return out
}

// legacyCorrectAnswer walks resprocessing/respcondition/conditionvar/varequal
// values in document order. Single-choice items keep whichever value appears
// last; multi-answer items accumulate a set; any other type stays absent.
func legacyCorrectAnswer(it *element, qtype string) CorrectAnswer {
	rp := it.child("resprocessing")
	if rp == nil {
		return NoAnswer()
	}

	var values []string
	for _, rc := range rp.childrenNamed("respcondition") {
		cv := rc.child("conditionvar")
		for _, ve := range cv.childrenNamed("varequal") {
			values = append(values, ve.text())
		}
	}
	if len(values) == 0 {
		return NoAnswer()
	}

	switch qtype {
	case "multiple_choice_question":
		return SingleAnswer(values[len(values)-1])
	case "multiple_answers_question":
		return AnswerSetOf(values)
	default:
		return NoAnswer()
	}
}
