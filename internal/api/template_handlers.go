package api

import (
	"net/http"

	"github.com/ignite/pagecraft/internal/pkg/httputil"
	"github.com/ignite/pagecraft/internal/service/templates"
)

// ListTemplates handles GET /api/templates?tone=
func (h *Handlers) ListTemplates(w http.ResponseWriter, r *http.Request) {
	list, err := h.templates.List(r.Context(), r.URL.Query().Get("tone"))
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{"templates": list, "total": len(list)})
}

// TemplateFacets handles GET /api/templates/facets
func (h *Handlers) TemplateFacets(w http.ResponseWriter, r *http.Request) {
	f, err := h.templates.Facets(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, f)
}

// GetTemplate handles GET /api/templates/{id}
func (h *Handlers) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := h.templates.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, t)
}

// CreateTemplate handles POST /api/templates
func (h *Handlers) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var in templates.CreateInput
	if !httputil.Decode(w, r, &in) {
		return
	}
	t, err := h.templates.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.Created(w, t)
}

// UpdateTemplate handles PUT /api/templates/{id}
func (h *Handlers) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var u templates.UpdateFields
	if !httputil.Decode(w, r, &u) {
		return
	}
	t, err := h.templates.Update(r.Context(), id, u)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, t)
}

// DeleteTemplate handles DELETE /api/templates/{id}
func (h *Handlers) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.templates.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	httputil.NoContent(w)
}
