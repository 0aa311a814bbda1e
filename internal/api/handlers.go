package api

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ignite/pagecraft/internal/service/campaign"
	"github.com/ignite/pagecraft/internal/service/catalog"
	"github.com/ignite/pagecraft/internal/service/generation"
	"github.com/ignite/pagecraft/internal/service/settings"
	"github.com/ignite/pagecraft/internal/service/templates"
)

const (
	maxJSONBody   = 1 << 20
	maxUploadBody = 10 << 20
)

// Deps are the services the handlers delegate to. Health may be nil.
type Deps struct {
	Catalog    *catalog.Service
	Generation *generation.Service
	Templates  *templates.Service
	Campaigns  *campaign.Service
	Settings   *settings.Service
	Health     *HealthChecker
}

// Handlers holds the HTTP handlers for the /api routes.
type Handlers struct {
	catalog    *catalog.Service
	generation *generation.Service
	templates  *templates.Service
	campaigns  *campaign.Service
	settings   *settings.Service
	health     *HealthChecker
	markdown   goldmark.Markdown
}

// NewHandlers creates the handler set.
func NewHandlers(d Deps) *Handlers {
	return &Handlers{
		catalog:    d.Catalog,
		generation: d.Generation,
		templates:  d.Templates,
		campaigns:  d.Campaigns,
		settings:   d.Settings,
		health:     d.Health,
		markdown:   goldmark.New(goldmark.WithExtensions(extension.Linkify)),
	}
}
