package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/pagecraft/internal/pkg/httputil"
	"github.com/ignite/pagecraft/internal/service/settings"
)

// GetSettings handles GET /api/settings. The api key is masked.
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Load(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, settings.Masked(s))
}

// SaveSettings handles PUT /api/settings. Fields missing from the body
// keep their stored values.
func (h *Handlers) SaveSettings(w http.ResponseWriter, r *http.Request) {
	in, err := h.settings.Load(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	in.UploadedFiles = nil
	if !httputil.Decode(w, r, &in) {
		return
	}
	saved, err := h.settings.Save(r.Context(), in)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, settings.Masked(saved))
}

// UploadBrandFile handles POST /api/settings/files. Accepts a multipart
// form with a "file" field or JSON {"name": "...", "content": "..."}.
func (h *Handlers) UploadBrandFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	var name string
	var body []byte
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		file, header, err := r.FormFile("file")
		if err != nil {
			httputil.BadRequest(w, "multipart field \"file\" is required")
			return
		}
		defer file.Close()
		body, err = io.ReadAll(file)
		if err != nil {
			httputil.BadRequest(w, "could not read upload")
			return
		}
		name = header.Filename
	} else {
		var in struct {
			Name    string `json:"name"`
			Content string `json:"content"`
		}
		if !httputil.Decode(w, r, &in) {
			return
		}
		name, body = in.Name, []byte(in.Content)
	}

	f, err := h.settings.AddFile(r.Context(), name, body)
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.Created(w, f)
}

// RemoveBrandFile handles DELETE /api/settings/files/{fileID}
func (h *Handlers) RemoveBrandFile(w http.ResponseWriter, r *http.Request) {
	if err := h.settings.RemoveFile(r.Context(), chi.URLParam(r, "fileID")); err != nil {
		respondError(w, err)
		return
	}
	httputil.NoContent(w)
}

// TestConnection handles POST /api/settings/test-connection
func (h *Handlers) TestConnection(w http.ResponseWriter, r *http.Request) {
	status, err := h.settings.TestConnection(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	httputil.OK(w, map[string]string{"status": status})
}
