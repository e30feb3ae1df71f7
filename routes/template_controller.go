package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/formwave/formwave/httpx"
	"github.com/formwave/formwave/templates"
)

func ListTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"templates": templates.All(),
		})
	}
}

func GetTemplateById() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templateId := chi.URLParam(r, "id")
		tpl, ok := templates.ByID(templateId)
		if !ok {
			httpx.LogNotFound(w, "get_template", templateId)
			return
		}
		render.JSON(w, r, tpl)
	}
}
