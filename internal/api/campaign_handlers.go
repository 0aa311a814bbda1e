package api

import (
	"net/http"

	"github.com/ignite/pagecraft/internal/pkg/httputil"
	"github.com/ignite/pagecraft/internal/service/campaign"
)

// ListCampaigns handles GET /api/campaigns?status=&type=&search=
func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.campaigns.List(r.Context(), campaign.ListFilter{
		Status: q.Get("status"),
		Type:   q.Get("type"),
		Search: q.Get("search"),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{"campaigns": list, "total": len(list)})
}

// GetCampaign handles GET /api/campaigns/{id}
func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := h.campaigns.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, c)
}

// CreateCampaign handles POST /api/campaigns
func (h *Handlers) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var in campaign.CreateInput
	if !httputil.Decode(w, r, &in) {
		return
	}
	c, err := h.campaigns.Create(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.Created(w, c)
}

// UpdateCampaign handles PUT /api/campaigns/{id}
func (h *Handlers) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var u campaign.UpdateFields
	if !httputil.Decode(w, r, &u) {
		return
	}
	c, err := h.campaigns.Update(r.Context(), id, u)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, c)
}

// DeleteCampaign handles DELETE /api/campaigns/{id}
func (h *Handlers) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.campaigns.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	httputil.NoContent(w)
}

// GenerateCampaignContent handles POST /api/campaigns/generate
func (h *Handlers) GenerateCampaignContent(w http.ResponseWriter, r *http.Request) {
	var req campaign.ContentRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	content, err := h.campaigns.GenerateContent(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, content)
}
