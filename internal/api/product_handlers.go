package api

import (
	"bytes"
	"mime"
	"net/http"
	"strings"

	"github.com/ignite/pagecraft/internal/domain"
	"github.com/ignite/pagecraft/internal/pkg/httputil"
	"github.com/ignite/pagecraft/internal/service/catalog"
)

// ListProducts handles GET /api/products?q=&category=&sort=
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.catalog.List(r.Context(), catalog.ListFilter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Sort:     domain.ProductSort(q.Get("sort")),
	})
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{"products": products, "total": len(products)})
}

// ListCategories handles GET /api/products/categories
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, map[string]interface{}{"categories": cats})
}

// GetProduct handles GET /api/products/{id}
func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, p)
}

// UpdateProductDescription handles PUT /api/products/{id}/description
func (h *Handlers) UpdateProductDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body struct {
		Description string `json:"description"`
	}
	if !httputil.Decode(w, r, &body) {
		return
	}
	p, err := h.catalog.UpdateDescription(r.Context(), id, body.Description)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, p)
}

// ProductDescriptionHTML handles GET /api/products/{id}/description.html
// and renders the stored description from Markdown.
func (h *Handlers) ProductDescriptionHTML(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(p.CurrentDescription), &buf); err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// ImportProducts handles POST /api/products/import. A JSON body
// {"url": "..."} fetches the feed; any other body is parsed as the feed.
func (h *Handlers) ImportProducts(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body struct {
			URL string `json:"url"`
		}
		if !httputil.Decode(w, r, &body) {
			return
		}
		if !strings.HasPrefix(body.URL, "http://") && !strings.HasPrefix(body.URL, "https://") {
			httputil.BadRequest(w, "url must be an http(s) feed address")
			return
		}
		res, err := h.catalog.ImportURL(r.Context(), body.URL)
		if err != nil {
			respondError(w, err)
			return
		}
		httputil.OK(w, res)
		return
	}

	res, err := h.catalog.Import(r.Context(), r.Body)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, res)
}
