package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/formwave/formwave/app"
	"github.com/formwave/formwave/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Post("/signup", Signup(app))
	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	api.Get("/templates", ListTemplates())
	api.Get("/templates/{id}", GetTemplateById())

	// public fill-out surface, keyed by form id
	api.Get(`/public/forms/{id:^\d+$}`, PublicGetForm(app))
	api.Post(`/public/forms/{id:^\d+$}/submissions`, PublicSubmitForm(app))

	api.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticated(app.TokenSecret))

		r.Get("/session", Session())
		r.Get("/dashboard", DashboardStats(app))

		// builder drafts, one route per builder mutation
		r.Post("/drafts", CreateDraft(app))
		r.Get("/drafts/{id}", GetDraft(app))
		r.Put("/drafts/{id}", UpdateDraftMeta(app))
		r.Post("/drafts/{id}/fields", AddDraftField(app))
		r.Post("/drafts/{id}/reorder", ReorderDraftFields(app))
		r.Post("/drafts/{id}/select", SelectDraftField(app))
		r.Patch("/drafts/{id}/fields/{fieldId}", UpdateDraftField(app))
		r.Delete("/drafts/{id}/fields/{fieldId}", DeleteDraftField(app))
		r.Post("/drafts/{id}/fields/{fieldId}/options", AddDraftFieldOption(app))
		r.Put(`/drafts/{id}/fields/{fieldId}/options/{index:^\d+$}`, UpdateDraftFieldOption(app))
		r.Delete(`/drafts/{id}/fields/{fieldId}/options/{index:^\d+$}`, RemoveDraftFieldOption(app))
		r.Post("/drafts/{id}/publish", PublishDraft(app))

		// published forms, owner-scoped
		r.Get("/forms", ListForms(app))
		r.Get(`/forms/{id:^\d+$}`, GetFormById(app))
		r.Put(`/forms/{id:^\d+$}`, UpdateForm(app))
		r.Delete(`/forms/{id:^\d+$}`, DeleteForm(app))
		r.Get(`/forms/{id:^\d+$}/results`, GetFormResults(app))
	})

	return api
}
