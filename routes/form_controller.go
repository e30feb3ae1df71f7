package routes

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/formwave/formwave/app"
	"github.com/formwave/formwave/httpx"
	"github.com/formwave/formwave/log"
	"github.com/formwave/formwave/model"
	"github.com/formwave/formwave/publish"
	"github.com/formwave/formwave/routes/middlewares"
)

func formIdParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	formId, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
		return 0, false
	}
	return formId, true
}

type formListItem struct {
	ID            int64          `json:"id"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Type          model.FormType `json:"type"`
	CreatedAt     time.Time      `json:"createdAt"`
	ResponseCount int            `json:"responseCount"`
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())

		rows, err := app.QueryContext(r.Context(), `
			SELECT f.id, f.title, f.description, f.type, f.created_at, COUNT(s.id)
			FROM form f
			LEFT OUTER JOIN submission s ON (f.id = s.form_id)
			WHERE f.user_id = ?
			GROUP BY f.id
			ORDER BY f.created_at DESC`,
			identity.UserID,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.get_forms", err)
			return
		}
		defer rows.Close()

		forms := []formListItem{}
		for rows.Next() {
			f := formListItem{}
			err = rows.Scan(&f.ID, &f.Title, &f.Description, &f.Type, &f.CreatedAt, &f.ResponseCount)
			if err != nil {
				httpx.LogInternalError(w, "db.get_forms.scan", err)
				return
			}
			forms = append(forms, f)
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())
		formId, ok := formIdParam(w, r)
		if !ok {
			return
		}

		form, err := getOwnedForm(r.Context(), app, formId, identity.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogStatusMsg(w, http.StatusNotFound, log.DebugLevel, "get_form.not_found", msgFormNotFound)
			} else {
				httpx.LogInternalError(w, "db.get_form", err)
			}
			return
		}

		form.Questions, err = queryQuestions(r.Context(), app.DB, formId)
		if err != nil {
			httpx.LogInternalError(w, "db.get_form.questions", err)
			return
		}

		render.JSON(w, r, form)
	}
}

// UpdateForm is the edit flow: full question set comes in, existing
// questions are updated in place, removed ones deleted by id
// complement, new ones inserted after, all inside one transaction
// guarded by the form's version counter.
func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())
		formId, ok := formIdParam(w, r)
		if !ok {
			return
		}

		form := model.Form{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if form.Type == "" {
			form.Type = model.FormSurvey
		}
		if !form.Type.Valid() {
			renderValidationError(w, r, &publish.ValidationError{Field: "type", Message: "Unknown form type"})
			return
		}

		if ve := publish.ValidateEdit(form.Title, form.Questions); ve != nil {
			renderValidationError(w, r, ve)
			return
		}

		if _, err := getOwnedForm(r.Context(), app, formId, identity.UserID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httpx.LogStatusMsg(w, http.StatusNotFound, log.DebugLevel, "update_form.not_found", msgFormNotFound)
			} else {
				httpx.LogInternalError(w, "db.update_form.load", err)
			}
			return
		}

		diff := publish.DiffQuestions(form.Questions)

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		// delete questions no longer present
		keep := diff.KeepIDs()
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keep)), ",")
		args := make([]any, 0, len(keep)+1)
		args = append(args, formId)
		for _, id := range keep {
			args = append(args, id)
		}
		_, err = tx.ExecContext(r.Context(), `
			DELETE FROM question
			WHERE form_id = ?
				AND id NOT IN (`+placeholders+`)`,
			args...,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_form.delete_questions", err)
			return
		}

		for _, q := range diff.Update {
			optionsJson, stylesJson, err := questionJsonColumns(q)
			if err != nil {
				httpx.LogInternalError(w, "db.update_form.questions.encode", err)
				return
			}
			_, err = tx.ExecContext(r.Context(), `
				UPDATE question
				SET
					title = ?,
					type = ?,
					field_type = ?,
					required = ?,
					options = ?,
					placeholder = ?,
					help_text = ?,
					styles = ?,
					position = ?
				WHERE id = ?
					AND form_id = ?`,
				q.Title, q.Type, q.FieldType, q.Required, optionsJson,
				q.Placeholder, q.HelpText, stylesJson, q.Position,
				q.ID, formId,
			)
			if err != nil {
				httpx.LogInternalError(w, "db.update_form.questions.update", err)
				return
			}
		}

		if len(diff.Insert) > 0 {
			stmt, err := tx.PrepareContext(r.Context(), insertQuestionSQL)
			if err != nil {
				httpx.LogInternalError(w, "db.update_form.questions.prepare", err)
				return
			}
			defer stmt.Close()

			for _, q := range diff.Insert {
				q.FormID = formId
				args, err := questionArgs(q)
				if err != nil {
					httpx.LogInternalError(w, "db.update_form.questions.encode", err)
					return
				}
				_, err = stmt.ExecContext(r.Context(), args...)
				if err != nil {
					httpx.LogInternalError(w, "db.update_form.questions.insert", err)
					return
				}
			}
		}

		settings, err := settingsJson(form.Settings)
		if err != nil {
			httpx.LogInternalError(w, "db.update_form.settings.encode", err)
			return
		}

		res, err := tx.ExecContext(r.Context(), `
			UPDATE form
			SET
				title = ?,
				description = ?,
				type = ?,
				settings = ?,
				version = version+1
			WHERE	id = ?
				AND version = ?`,
			form.Title,
			form.Description,
			form.Type,
			settings,
			formId,
			form.Version,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.update_form", err)
			return
		}
		// optimistic lock
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.update_form.verify", err)
			return
		}
		if n < 1 {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "db.update_form.verify.conflict")
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.update_form.commit", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middlewares.IdentityFrom(r.Context())
		formId, ok := formIdParam(w, r)
		if !ok {
			return
		}

		// questions, submissions and answers go with it via FK cascade
		res, err := app.ExecContext(r.Context(), `
			DELETE FROM form
			WHERE id = ?
				AND user_id = ?`,
			formId,
			identity.UserID,
		)
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form", err)
			return
		}
		n, err := res.RowsAffected()
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form.verify", err)
			return
		}
		if n < 1 {
			httpx.LogStatusMsg(w, http.StatusNotFound, log.DebugLevel, "delete_form.not_found", msgFormNotFound)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
