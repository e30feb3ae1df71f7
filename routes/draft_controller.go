package routes

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/formwave/formwave/app"
	"github.com/formwave/formwave/builder"
	"github.com/formwave/formwave/httpx"
	"github.com/formwave/formwave/log"
	"github.com/formwave/formwave/model"
	"github.com/formwave/formwave/publish"
	"github.com/formwave/formwave/routes/middlewares"
	"github.com/formwave/formwave/templates"
)

const msgDraftNotFound = "Draft not found or you do not have permission to edit it"

// ownedDraft resolves the draft from the URL and checks it belongs to
// the caller. Missing and foreign drafts look the same to the client.
func ownedDraft(w http.ResponseWriter, r *http.Request, app app.App) (*builder.Draft, bool) {
	identity, ok := middlewares.IdentityFrom(r.Context())
	if !ok {
		httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "draft.identity")
		return nil, false
	}

	draftId := chi.URLParam(r, "id")
	draft, ok := app.Drafts.Get(draftId)
	if !ok || draft.OwnerID != identity.UserID {
		httpx.LogStatusMsg(w, http.StatusNotFound, log.DebugLevel, "draft.not_found", msgDraftNotFound)
		return nil, false
	}
	return draft, true
}

type draftMetaRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Type        model.FormType `json:"type"`
	TemplateID  string         `json:"templateId,omitempty"`
}

func CreateDraft(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.IdentityFrom(r.Context())
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "draft.identity")
			return
		}

		req := draftMetaRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if ve := validateDraftMeta(&req); ve != nil {
			renderValidationError(w, r, ve)
			return
		}

		draft := app.Drafts.Create(identity.UserID, req.Title, req.Description, req.Type)

		// seed from a catalog template when one was picked
		if req.TemplateID != "" {
			tpl, ok := templates.ByID(req.TemplateID)
			if !ok {
				app.Drafts.Delete(draft.ID)
				httpx.LogNotFound(w, "draft.template", req.TemplateID)
				return
			}
			draft.Update(func(b *builder.Builder) {
				seedFromTemplate(b, tpl)
			})
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, draft.Snapshot())
	}
}

func validateDraftMeta(req *draftMetaRequest) *publish.ValidationError {
	if req.Type == "" {
		req.Type = model.FormSurvey
	}
	if strings.TrimSpace(req.Title) == "" {
		return &publish.ValidationError{Field: "title", Message: "Form title is required"}
	}
	if !req.Type.Valid() {
		return &publish.ValidationError{Field: "type", Message: "Unknown form type"}
	}
	return nil
}

// seedFromTemplate replays a template's fields through the builder so
// they get fresh ids and the usual defaults.
func seedFromTemplate(b *builder.Builder, tpl templates.Template) {
	for _, tf := range tpl.Fields {
		f := b.AddField(tf.Type)
		tf := tf
		patch := builder.FieldPatch{
			Label:       &tf.Label,
			Placeholder: &tf.Placeholder,
			HelpText:    &tf.HelpText,
			Required:    &tf.Required,
		}
		if tf.Type.HasOptions() {
			patch.Options = &tf.Options
		}
		b.UpdateField(f.ID, patch)
	}
	b.CloseEditor()
}

func GetDraft(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := ownedDraft(w, r, app)
		if !ok {
			return
		}
		render.JSON(w, r, draft.Snapshot())
	}
}

func UpdateDraftMeta(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := ownedDraft(w, r, app)
		if !ok {
			return
		}

		req := draftMetaRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if ve := validateDraftMeta(&req); ve != nil {
			renderValidationError(w, r, ve)
			return
		}

		draft.SetMeta(req.Title, req.Description, req.Type)
		render.JSON(w, r, draft.Snapshot())
	}
}

type addFieldRequest struct {
	Type model.FieldType `json:"type"`
}

func AddDraftField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := ownedDraft(w, r, app)
		if !ok {
			return
		}

		req := addFieldRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}
		if !req.Type.Valid() {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "draft.add_field.type", "Unknown field type %q", req.Type)
			return
		}

		draft.Update(func(b *builder.Builder) {
			b.AddField(req.Type)
		})

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, draft.Snapshot())
	}
}

type reorderRequest struct {
	Source int `json:"source"`
	// nil when the drag was cancelled outside any drop target
	Destination *int `json:"destination"`
}

func ReorderDraftFields(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := ownedDraft(w, r, app)
		if !ok {
			return
		}

		req := reorderRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if req.Destination != nil {
			draft.Update(func(b *builder.Builder) {
				b.Reorder(req.Source, *req.Destination)
			})
		}
		render.JSON(w, r, draft.Snapshot())
	}
}

type selectFieldRequest struct {
	// empty id closes the editor
	FieldID string `json:"fieldId"`
}

func SelectDraftField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := ownedDraft(w, r, app)
		if !ok {
			return
		}

		req := selectFieldRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		draft.Update(func(b *builder.Builder) {
			if req.FieldID == "" {
				b.CloseEditor()
			} else {
				b.Select(req.FieldID)
			}
		})
		render.JSON(w, r, draft.Snapshot())
	}
}

func UpdateDraftField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := ownedDraft(w, r, app)
		if !ok {
			return
		}

		patch := builder.FieldPatch{}
		err := render.DecodeJSON(r.Body, &patch)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		fieldId := chi.URLParam(r, "fieldId")
		draft.Update(func(b *builder.Builder) {
			b.UpdateField(fieldId, patch)
		})
		render.JSON(w, r, draft.Snapshot())
	}
}

func DeleteDraftField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := ownedDraft(w, r, app)
		if !ok {
			return
		}

		fieldId := chi.URLParam(r, "fieldId")
		draft.Update(func(b *builder.Builder) {
			b.DeleteField(fieldId)
		})
		render.JSON(w, r, draft.Snapshot())
	}
}

func AddDraftFieldOption(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := ownedDraft(w, r, app)
		if !ok {
			return
		}

		fieldId := chi.URLParam(r, "fieldId")
		draft.Update(func(b *builder.Builder) {
			b.AddOption(fieldId)
		})
		render.JSON(w, r, draft.Snapshot())
	}
}

type updateOptionRequest struct {
	Text string `json:"text"`
}

func UpdateDraftFieldOption(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := ownedDraft(w, r, app)
		if !ok {
			return
		}

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.index")
			return
		}

		req := updateOptionRequest{}
		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		fieldId := chi.URLParam(r, "fieldId")
		draft.Update(func(b *builder.Builder) {
			b.UpdateOption(fieldId, index, req.Text)
		})
		render.JSON(w, r, draft.Snapshot())
	}
}

func RemoveDraftFieldOption(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		draft, ok := ownedDraft(w, r, app)
		if !ok {
			return
		}

		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.index")
			return
		}

		fieldId := chi.URLParam(r, "fieldId")
		draft.Update(func(b *builder.Builder) {
			b.RemoveOption(fieldId, index)
		})
		render.JSON(w, r, draft.Snapshot())
	}
}

// PublishDraft maps the draft onto form and question rows inside one
// transaction, then discards the draft.
func PublishDraft(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middlewares.IdentityFrom(r.Context())
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "draft.identity")
			return
		}

		draft, ok := ownedDraft(w, r, app)
		if !ok {
			return
		}

		title, description, formType := draft.Meta()
		fields := draft.Fields()

		if ve := publish.ValidateNewForm(title, fields); ve != nil {
			renderValidationError(w, r, ve)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		var formId int64
		err = tx.QueryRowContext(r.Context(), `
			INSERT INTO form (user_id, title, description, type) VALUES (?, ?, ?, ?)
			RETURNING id`,
			identity.UserID,
			title,
			description,
			formType,
		).Scan(&formId)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form", err)
			return
		}

		stmt, err := tx.PrepareContext(r.Context(), insertQuestionSQL)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form.questions.prepare", err)
			return
		}
		defer stmt.Close()

		for _, q := range publish.BuildQuestions(formId, fields) {
			args, err := questionArgs(q)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_form.questions.encode", err)
				return
			}
			_, err = stmt.ExecContext(r.Context(), args...)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_form.questions.insert", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form.commit", err)
			return
		}

		app.Drafts.Delete(draft.ID)

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": formId,
		})
	}
}

func renderValidationError(w http.ResponseWriter, r *http.Request, ve *publish.ValidationError) {
	log.Debug("validation:", ve.Error())
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]any{
		"error": ve,
	})
}
