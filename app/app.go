package app

import (
	"database/sql"

	"github.com/go-chi/oauth"

	"github.com/formwave/formwave/builder"
	"github.com/formwave/formwave/config"
)

// App bundles the shared dependencies handed to every route handler.
type App struct {
	*sql.DB
	*oauth.BearerServer
	config.Config
	Drafts *builder.Store
}
