package routes

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"

	"github.com/formwave/formwave/app"
	"github.com/formwave/formwave/httpx"
	"github.com/formwave/formwave/log"
	"github.com/formwave/formwave/model"
)

const msgPublicFormNotFound = "Form not found or no longer available"

type publicForm struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Questions   []model.Question `json:"questions"`
}

func PublicGetForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, ok := formIdParam(w, r)
		if !ok {
			return
		}

		form := publicForm{}
		err := app.QueryRowContext(r.Context(), `
			SELECT id, title, description
			FROM form
			WHERE id = ?`,
			formId,
		).Scan(&form.ID, &form.Title, &form.Description)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogStatusMsg(w, http.StatusNotFound, log.DebugLevel, "public.get_form.not_found", msgPublicFormNotFound)
			} else {
				httpx.LogInternalError(w, "db.public.get_form", err)
			}
			return
		}

		form.Questions, err = queryQuestions(r.Context(), app.DB, formId)
		if err != nil {
			httpx.LogInternalError(w, "db.public.get_form.questions", err)
			return
		}

		render.JSON(w, r, form)
	}
}

// answerPayload accepts either a bare string (text questions) or an
// array of option strings (multiple choice).
type answerPayload struct {
	text    string
	choices []string
}

func (p *answerPayload) UnmarshalJSON(raw []byte) error {
	var choices []string
	if err := json.Unmarshal(raw, &choices); err == nil {
		p.choices = choices
		return nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		p.text = text
		return nil
	}

	return fmt.Errorf("answer must be a string or an array of strings")
}

type submitRequest struct {
	// keyed by question id
	Answers map[string]answerPayload `json:"answers"`
}

// clientIP strips the port from a RemoteAddr, keeping IPv6 addresses
// whole instead of truncating at the first colon.
func clientIP(remoteAddr string) string {
	ip, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return ip
}

type inflightCheck struct {
	op     bool
	key    string
	result chan<- bool
}

// PublicSubmitForm validates and stores one submission. A channel-based
// guard rejects a second concurrent submit from the same client while
// the first is still in flight; completed submits do not block later
// ones, a form may be filled out any number of times.
func PublicSubmitForm(app app.App) http.HandlerFunc {
	inflightStart := make(chan inflightCheck)
	go func() {
		inflight := make(map[string]bool)

		for {
			req := <-inflightStart
			if req.op {
				req.result <- inflight[req.key]
				inflight[req.key] = true
			} else {
				delete(inflight, req.key)
			}
		}
	}()

	return func(w http.ResponseWriter, r *http.Request) {
		formId, ok := formIdParam(w, r)
		if !ok {
			return
		}

		req := submitRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		questions, err := queryQuestions(r.Context(), app.DB, formId)
		if err != nil {
			httpx.LogInternalError(w, "db.public.submit.questions", err)
			return
		}
		if len(questions) == 0 {
			httpx.LogStatusMsg(w, http.StatusNotFound, log.DebugLevel, "public.submit.not_found", msgPublicFormNotFound)
			return
		}

		// collect every validation failure, not just the first
		validationErrors := map[string]string{}
		values := make(map[int64]model.AnswerValue, len(questions))
		for _, q := range questions {
			key := strconv.FormatInt(q.ID, 10)
			payload := req.Answers[key]

			var value model.AnswerValue
			if q.Type == model.QuestionMultipleChoice {
				value = model.ChoicesAnswer(payload.choices...)
				if q.Required && len(payload.choices) == 0 {
					validationErrors[key] = "Please select at least one option"
				}
			} else {
				value = model.TextAnswer(payload.text)
				if q.Required && strings.TrimSpace(payload.text) == "" {
					validationErrors[key] = "This field is required"
				}
			}
			values[q.ID] = value
		}
		if len(validationErrors) > 0 {
			log.Debugf("public.submit.validation: %d invalid answers", len(validationErrors))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, map[string]any{
				"errors": validationErrors,
			})
			return
		}

		// single-flight guard per client and form
		guardKey := clientIP(r.RemoteAddr) + "/" + strconv.FormatInt(formId, 10)
		inflightDone := make(chan bool)
		inflightStart <- inflightCheck{true, guardKey, inflightDone}
		if <-inflightDone {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "public.submit.in_flight")
			return
		}
		defer func() { inflightStart <- inflightCheck{false, guardKey, nil} }()

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		var submissionId int64
		err = tx.QueryRowContext(r.Context(), `
			INSERT INTO submission (form_id, submitted_at) VALUES (?, ?)
			RETURNING id`,
			formId,
			time.Now(),
		).Scan(&submissionId)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_submission", err)
			return
		}

		stmt, err := tx.PrepareContext(r.Context(), `
			INSERT INTO answer (submission_id, question_id, value)
			VALUES (?, ?, ?)`)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_submission.answers.prepare", err)
			return
		}
		defer stmt.Close()

		for _, q := range questions {
			encoded, err := values[q.ID].Encode()
			if err != nil {
				httpx.LogInternalError(w, "db.insert_submission.answers.encode", err)
				return
			}
			_, err = stmt.ExecContext(r.Context(), submissionId, q.ID, encoded)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_submission.answers.insert", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_submission.commit", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": submissionId,
		})
	}
}
