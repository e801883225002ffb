package http

import (
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/OPS-PIvers/Schoology-to-Forms/internal/convert"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/forms"
	"github.com/OPS-PIvers/Schoology-to-Forms/internal/results"
)

// FormOutcome pairs one converted quiz with its created form, or with the
// form-creation error when the collaborator failed for that quiz.
type FormOutcome struct {
	QuizID string        `json:"quiz_id"`
	Title  string        `json:"title"`
	Graded bool          `json:"graded"`
	Form   *forms.Record `json:"form,omitempty"`
	Error  string        `json:"error,omitempty"`
}

type convertResponse struct {
	Quizzes  []FormOutcome             `json:"quizzes"`
	Outcomes []convert.ResourceOutcome `json:"outcomes"`
}

// POST /convert (multipart: file=archive.zip)
//
// Runs the whole pipeline: convert the archive, create one form per quiz,
// append one row per form to the results store. A form-creation or logging
// failure is scoped to its quiz; only conversion-fatal errors abort.
func ConvertHandler(svc *convert.Service, formSvc forms.Service, store results.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, hdr, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		blob, err := io.ReadAll(f)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		log.Info("conversion requested",
			zap.String("filename", hdr.Filename),
			zap.Int("bytes", len(blob)))

		res, err := svc.Convert(r.Context(), blob)
		if err != nil {
			status := http.StatusBadRequest
			if kind, ok := convert.KindOf(err); ok && kind == convert.KindExtraction {
				status = http.StatusUnprocessableEntity
			}
			http.Error(w, err.Error(), status)
			return
		}

		resp := convertResponse{Outcomes: res.Outcomes}
		for _, quiz := range res.Quizzes {
			out := FormOutcome{QuizID: quiz.ID, Title: quiz.Title, Graded: forms.Graded(quiz)}
			rec, err := formSvc.CreateForm(r.Context(), quiz)
			if err != nil {
				log.Error("form creation failed", zap.String("quiz", quiz.ID), zap.Error(err))
				out.Error = err.Error()
				resp.Quizzes = append(resp.Quizzes, out)
				continue
			}
			if err := store.Append(r.Context(), results.RowFromRecord(rec)); err != nil {
				log.Error("result log append failed", zap.String("form", rec.FormID), zap.Error(err))
			}
			out.Form = &rec
			resp.Quizzes = append(resp.Quizzes, out)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}
