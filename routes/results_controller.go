package routes

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/formwave/formwave/aggregate"
	"github.com/formwave/formwave/app"
	"github.com/formwave/formwave/httpx"
	"github.com/formwave/formwave/log"
	"github.com/formwave/formwave/routes/middlewares"
)

// GetFormResults serves the owner's results dashboard in one of two
// view modes: aggregated per-question summaries, or per-submission
// transcripts.
func GetFormResults(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())
		formId, ok := formIdParam(w, r)
		if !ok {
			return
		}

		view := r.URL.Query().Get("view")
		if view == "" {
			view = "summary"
		}
		if view != "summary" && view != "responses" {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "results.view", "Unknown view mode %q", view)
			return
		}

		form, err := getOwnedForm(r.Context(), app, formId, identity.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogStatusMsg(w, http.StatusNotFound, log.DebugLevel, "results.not_found", msgFormNotFound)
			} else {
				httpx.LogInternalError(w, "db.results.get_form", err)
			}
			return
		}

		questions, err := queryQuestions(r.Context(), app.DB, formId)
		if err != nil {
			httpx.LogInternalError(w, "db.results.questions", err)
			return
		}
		submissions, err := querySubmissions(r.Context(), app.DB, formId)
		if err != nil {
			httpx.LogInternalError(w, "db.results.submissions", err)
			return
		}
		answers, err := queryAnswers(r.Context(), app.DB, formId)
		if err != nil {
			httpx.LogInternalError(w, "db.results.answers", err)
			return
		}

		resp := map[string]any{
			"form": map[string]any{
				"id":          form.ID,
				"title":       form.Title,
				"description": form.Description,
				"type":        form.Type,
			},
			"responseCount": len(submissions),
			"view":          view,
		}
		if view == "summary" {
			resp["summaries"] = aggregate.Summarize(questions, answers)
		} else {
			resp["responses"] = aggregate.Transcripts(questions, submissions, answers)
		}

		render.JSON(w, r, resp)
	}
}

type recentForm struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"createdAt"`
	ResponseCount int       `json:"responseCount"`
}

// DashboardStats aggregates the caller's forms into the dashboard
// header numbers plus the most recent forms.
func DashboardStats(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())

		var formCount, responseCount int
		err := app.QueryRowContext(r.Context(), `
			SELECT COUNT(DISTINCT f.id), COUNT(s.id)
			FROM form f
			LEFT OUTER JOIN submission s ON (f.id = s.form_id)
			WHERE f.user_id = ?`,
			identity.UserID,
		).Scan(&formCount, &responseCount)
		if err != nil {
			httpx.LogInternalError(w, "db.dashboard.counts", err)
			return
		}

		rows, err := app.QueryContext(r.Context(), `
			SELECT f.id, f.title, f.created_at, COUNT(s.id)
			FROM form f
			LEFT OUTER JOIN submission s ON (f.id = s.form_id)
			WHERE f.user_id = ?
			GROUP BY f.id
			ORDER BY f.created_at DESC
			LIMIT 5`,
			identity.UserID,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.dashboard.recent", err)
			return
		}
		defer rows.Close()

		recent := []recentForm{}
		for rows.Next() {
			f := recentForm{}
			err = rows.Scan(&f.ID, &f.Title, &f.CreatedAt, &f.ResponseCount)
			if err != nil {
				httpx.LogInternalError(w, "db.dashboard.recent.scan", err)
				return
			}
			recent = append(recent, f)
		}

		render.JSON(w, r, map[string]any{
			"formCount":     formCount,
			"responseCount": responseCount,
			"recentForms":   recent,
		})
	}
}
