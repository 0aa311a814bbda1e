package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/ignite/pagecraft/internal/copywriter"
	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/pkg/httputil"
	"github.com/ignite/pagecraft/internal/pkg/metrics"
	"github.com/ignite/pagecraft/internal/service/generation"
)

// GenerateDescriptions handles POST /api/descriptions/generate
func (h *Handlers) GenerateDescriptions(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	res, err := h.generation.Generate(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, res)
}

// BulkRequest is the body of POST /api/descriptions/bulk. Features, Tone
// and VariantCount apply to every item that does not set its own.
type BulkRequest struct {
	Items        []domain.GenerationRequest `json:"items"`
	Features     domain.Features            `json:"features"`
	Tone         domain.Tone                `json:"tone"`
	VariantCount int                        `json:"variant_count"`
}

// BulkResponse summarizes a bulk run.
type BulkResponse struct {
	Results   []domain.BulkItemResult `json:"results"`
	Succeeded int                     `json:"succeeded"`
	Failed    int                     `json:"failed"`
}

// BulkGenerate handles POST /api/descriptions/bulk
func (h *Handlers) BulkGenerate(w http.ResponseWriter, r *http.Request) {
	var body BulkRequest
	if !httputil.Decode(w, r, &body) {
		return
	}
	if len(body.Items) == 0 {
		httputil.BadRequest(w, "items must not be empty")
		return
	}

	reqs := make([]domain.GenerationRequest, len(body.Items))
	for i, item := range body.Items {
		if len(item.Features) == 0 {
			item.Features = body.Features
		}
		item.Tone = domain.ToneOr(item.Tone, body.Tone)
		if item.VariantCount == 0 {
			item.VariantCount = body.VariantCount
		}
		reqs[i] = item
	}

	results := h.generation.BulkGenerate(r.Context(), reqs)
	resp := BulkResponse{Results: results}
	for _, res := range results {
		if res.Status == domain.BulkSuccess {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	httputil.OK(w, resp)
}

// RegenerateDescription handles POST /api/descriptions/{id}/regenerate.
// The body is optional.
func (h *Handlers) RegenerateDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var opts generation.RegenerateOptions
	if !httputil.DecodeOptional(w, r, &opts) {
		return
	}
	res, err := h.generation.Regenerate(r.Context(), id, opts)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, res)
}

// GetVariant handles GET /api/descriptions/{id}
func (h *Handlers) GetVariant(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := h.generation.Variant(id)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, v)
}

// DescriptionHistory handles GET /api/descriptions/history?subject=
func (h *Handlers) DescriptionHistory(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectParam(w, r)
	if !ok {
		return
	}
	history := h.generation.History(subject)
	httputil.OK(w, map[string]interface{}{"subject": subject, "variants": history, "total": len(history)})
}

// EditVariantContent handles PATCH /api/descriptions/{id}
func (h *Handlers) EditVariantContent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Content string `json:"content"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	v, err := h.generation.EditContent(id, body.Content)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, v)
}

// EditVariantSEO handles PATCH /api/descriptions/{id}/seo
func (h *Handlers) EditVariantSEO(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	v, err := h.generation.EditSEO(id, body.Field, body.Value)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, v)
}

// GenerationStatus handles GET /api/descriptions/status?subject=
func (h *Handlers) GenerationStatus(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectParam(w, r)
	if !ok {
		return
	}
	httputil.OK(w, map[string]interface{}{
		"subject":    subject,
		"generating": h.generation.IsGenerating(subject),
	})
}

// CancelGeneration handles DELETE /api/descriptions/status?subject=
func (h *Handlers) CancelGeneration(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectParam(w, r)
	if !ok {
		return
	}
	httputil.OK(w, map[string]interface{}{
		"subject":  subject,
		"canceled": h.generation.Cancel(subject),
	})
}

// AnalyzeDescription handles POST /api/analyze. The body is either
// {"content": "..."} or plain text.
func (h *Handlers) AnalyzeDescription(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	var content string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/plain") {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			httputil.BadRequest(w, "could not read body")
			return
		}
		content = string(data)
	} else {
		var body struct {
			Content string `json:"content"`
		}
		if !httputil.Decode(w, r, &body) {
			return
		}
		content = body.Content
	}
	if strings.TrimSpace(content) == "" {
		httputil.BadRequest(w, "content is required")
		return
	}

	report := copywriter.Analyze(content)
	metrics.QualityOverallScore.Observe(float64(report.QualityScores.Overall))
	httputil.OK(w, report)
}

func subjectParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	subject := strings.TrimSpace(r.URL.Query().Get("subject"))
	if subject == "" {
		httputil.BadRequest(w, "subject is required")
		return "", false
	}
	return subject, true
}
