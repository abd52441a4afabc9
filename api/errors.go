package api

import (
	// Go Internal Packages
	"net/http"

	// Local Packages
	errors "tx-guard/errors"

	// External Packages
	"go.uber.org/zap"
)

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
	Field   string      `json:"field,omitempty"`
}

// StatusOf maps an error kind onto an HTTP status. A missing configuration
// is a deployment defect and reported as a server error.
func StatusOf(err error) int {
	switch errors.KindOf(err) {
	case errors.Invalid:
		return http.StatusBadRequest
	case errors.NotFound:
		return http.StatusNotFound
	case errors.Business:
		if errors.CodeOf(err) == errors.CodeConfiguration {
			return http.StatusInternalServerError
		}
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	resp := errorResponse{Code: errors.CodeOf(err), Field: errors.FieldOf(err), Message: err.Error()}

	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get("Request-ID")),
			zap.Error(err),
		)
		resp.Message = "internal error"
	}
	h.writeJSON(w, status, resp)
}
