package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/pagecraft/internal/pkg/httputil"
	"github.com/ignite/pagecraft/internal/service/campaign"
	"github.com/ignite/pagecraft/internal/service/catalog"
	"github.com/ignite/pagecraft/internal/service/generation"
	"github.com/ignite/pagecraft/internal/service/settings"
	"github.com/ignite/pagecraft/internal/service/templates"
)

// respondError maps service errors to HTTP responses. Anything not
// recognised is logged and reported as a generic 500 so internal details
// never reach the client.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, generation.ErrConcurrentGeneration):
		httputil.Conflict(w, err.Error())
	case generation.IsCanceled(err):
		httputil.ErrorCode(w, http.StatusConflict, "canceled", "generation was canceled")
	case errors.Is(err, catalog.ErrFeedUnavailable):
		httputil.ErrorCode(w, http.StatusBadGateway, "feed_unavailable", err.Error())
	case errors.Is(err, settings.ErrNotConnected):
		httputil.ErrorCode(w, http.StatusBadRequest, "not_connected", err.Error())
	case isNotFound(err):
		httputil.NotFound(w, err.Error())
	case isValidation(err):
		httputil.BadRequest(w, err.Error())
	default:
		httputil.InternalError(w, err)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, generation.ErrNotFound) ||
		errors.Is(err, catalog.ErrNotFound) ||
		errors.Is(err, templates.ErrNotFound) ||
		errors.Is(err, campaign.ErrNotFound) ||
		errors.Is(err, settings.ErrNotFound)
}

func isValidation(err error) bool {
	return errors.Is(err, generation.ErrValidation) ||
		errors.Is(err, generation.ErrUnknownSEOField) ||
		errors.Is(err, catalog.ErrValidation) ||
		errors.Is(err, templates.ErrValidation) ||
		errors.Is(err, campaign.ErrValidation) ||
		errors.Is(err, settings.ErrValidation)
}

// pathID parses the {id} URL parameter, writing a 400 when it is not a
// positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.BadRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}
