package forms

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/qti"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/storage"
)

// LocalService renders each quiz into the blob store and hands back file://
// URLs: an HTML rendering as the view URL and the editable JSON source as
// the edit URL. It stands in for a hosted forms backend in offline setups.
type LocalService struct {
	bs  storage.BlobStore
	now func() time.Time
}

func NewLocalService(bs storage.BlobStore) *LocalService {
	return &LocalService{bs: bs, now: time.Now}
}

func (s *LocalService) CreateForm(ctx context.Context, quiz qti.Quiz) (Record, error) {
	id := uuid.NewString()

	viewKey := fmt.Sprintf("forms/%s/form.html", id)
	if _, err := s.bs.Put(viewKey, strings.NewReader(renderHTML(quiz))); err != nil {
		return Record{}, fmt.Errorf("store form view: %w", err)
	}
	viewURL, err := s.bs.SignedURL(viewKey)
	if err != nil {
		return Record{}, err
	}

	src, err := json.MarshalIndent(formDocument(quiz), "", "  ")
	if err != nil {
		return Record{}, fmt.Errorf("encode form source: %w", err)
	}
	editKey := fmt.Sprintf("forms/%s/form.json", id)
	if _, err := s.bs.Put(editKey, strings.NewReader(string(src))); err != nil {
		return Record{}, fmt.Errorf("store form source: %w", err)
	}
	editURL, err := s.bs.SignedURL(editKey)
	if err != nil {
		return Record{}, err
	}

	return Record{
		FormID:        id,
		ViewURL:       viewURL,
		EditURL:       editURL,
		QuestionCount: len(quiz.Questions),
		CreatedAt:     s.now(),
	}, nil
}

// formItem is one question in the editable form source.
type formItem struct {
	ID      string     `json:"id"`
	Widget  WidgetKind `json:"widget"`
	Text    string     `json:"text"`
	Options []string   `json:"options,omitempty"`
	Correct []string   `json:"correct,omitempty"`
	Points  int        `json:"points"`
}

type formDoc struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Graded      bool       `json:"graded"`
	Items       []formItem `json:"items"`
}

func formDocument(quiz qti.Quiz) formDoc {
	doc := formDoc{
		Title:       quiz.Title,
		Description: quiz.Description,
		Graded:      Graded(quiz),
	}
	for _, q := range quiz.Questions {
		item := formItem{
			ID:     q.ID,
			Widget: WidgetFor(q.Kind()),
			Text:   q.Text,
			Points: q.Points,
		}
		switch q.Kind() {
		case qti.TypeTrueFalse:
			item.Options = TrueFalseOptions
			if c := TrueFalseCorrect(q.Correct); c != "" {
				item.Correct = []string{c}
			}
		case qti.TypeMultipleChoice, qti.TypeMultipleAnswers:
			for _, c := range q.Choices {
				item.Options = append(item.Options, c.Text)
				// correct ids may reference missing choices; match defensively
				if q.Correct.Contains(c.ID) {
					item.Correct = append(item.Correct, c.Text)
				}
			}
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

func renderHTML(quiz qti.Quiz) string {
	var b strings.Builder
	b.WriteString("<!doctype html>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(quiz.Title))
	fmt.Fprintf(&b, "<h1>%s</h1>\n", html.EscapeString(quiz.Title))
	if quiz.Description != "" {
		fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(quiz.Description))
	}
	for i, q := range quiz.Questions {
		fmt.Fprintf(&b, "<fieldset><legend>%d. %s</legend>\n", i+1, html.EscapeString(q.Text))
		switch WidgetFor(q.Kind()) {
		case WidgetSingleSelect:
			options := choiceTexts(q)
			for _, opt := range options {
				fmt.Fprintf(&b, "<label><input type=\"radio\" name=\"%s\"> %s</label><br>\n",
					html.EscapeString(q.ID), html.EscapeString(opt))
			}
		case WidgetMultiSelect:
			for _, opt := range choiceTexts(q) {
				fmt.Fprintf(&b, "<label><input type=\"checkbox\" name=\"%s\"> %s</label><br>\n",
					html.EscapeString(q.ID), html.EscapeString(opt))
			}
		case WidgetShortText:
			fmt.Fprintf(&b, "<input type=\"text\" name=\"%s\">\n", html.EscapeString(q.ID))
		default:
			fmt.Fprintf(&b, "<textarea name=\"%s\"></textarea>\n", html.EscapeString(q.ID))
		}
		b.WriteString("</fieldset>\n")
	}
	return b.String()
}

func choiceTexts(q qti.Question) []string {
	if q.Kind() == qti.TypeTrueFalse {
		return TrueFalseOptions
	}
	out := make([]string, 0, len(q.Choices))
	for _, c := range q.Choices {
		out = append(out, c.Text)
	}
	return out
}
