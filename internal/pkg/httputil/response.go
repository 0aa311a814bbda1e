package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ignite/pagecraft/internal/pkg/logger"
)

// MaxBodyBytes caps JSON request bodies read by Decode.
const MaxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// JSON encodes data as the response body.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("response encode failed", "status", status, "error", err)
	}
}

func OK(w http.ResponseWriter, data any)      { JSON(w, http.StatusOK, data) }
func Created(w http.ResponseWriter, data any) { JSON(w, http.StatusCreated, data) }
func NoContent(w http.ResponseWriter)         { w.WriteHeader(http.StatusNoContent) }

// ErrorCode writes an error envelope with a machine-readable code.
func ErrorCode(w http.ResponseWriter, status int, code, message string) {
	JSON(w, status, ErrorResponse{Error: message, Code: code})
}

func BadRequest(w http.ResponseWriter, message string) {
	ErrorCode(w, http.StatusBadRequest, "validation_error", message)
}

func NotFound(w http.ResponseWriter, message string) {
	ErrorCode(w, http.StatusNotFound, "not_found", message)
}

func Conflict(w http.ResponseWriter, message string) {
	ErrorCode(w, http.StatusConflict, "conflict", message)
}

// InternalError logs err and answers with a generic 500.
func InternalError(w http.ResponseWriter, err error) {
	logger.Error("internal error", "error", err)
	ErrorCode(w, http.StatusInternalServerError, "internal", "internal server error")
}

// Decode reads a required JSON body into dst. On failure it writes the
// error response and returns false.
func Decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decode(w, r, dst, false)
}

// DecodeOptional is Decode for endpoints where an empty body means
// "use the defaults".
func DecodeOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	return decode(w, r, dst, true)
}

func decode(w http.ResponseWriter, r *http.Request, dst any, optional bool) bool {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	err := json.NewDecoder(body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	var syntax *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		if optional {
			return true
		}
		BadRequest(w, "request body is required")
	case errors.As(err, &tooLarge):
		ErrorCode(w, http.StatusRequestEntityTooLarge, "payload_too_large",
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
	case errors.As(err, &syntax):
		BadRequest(w, fmt.Sprintf("invalid JSON at offset %d", syntax.Offset))
	case errors.As(err, &typeErr) && typeErr.Field != "":
		BadRequest(w, fmt.Sprintf("field %q must be %s", typeErr.Field, typeErr.Type))
	default:
		BadRequest(w, "invalid JSON: "+err.Error())
	}
	return false
}
