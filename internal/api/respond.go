package api

import (
	"encoding/json"
	"net/http"

	"github.com/collagely/collagely/pkg/xerrors"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error     errorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error's code to an HTTP status and writes the
// error envelope. Server-side failures are logged with the request ID.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := xerrors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"error", err,
			"request_id", requestIDFrom(r.Context()))
	}
	if code == "" {
		code = xerrors.ErrCodeInternal
	}

	writeJSON(w, status, errorResponse{
		Error:     errorBody{Code: string(code), Message: xerrors.UserMessage(err)},
		RequestID: requestIDFrom(r.Context()),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code xerrors.Code) int {
	switch code {
	case xerrors.ErrCodeInvalidRequest,
		xerrors.ErrCodeInvalidOptions,
		xerrors.ErrCodeInvalidFormat,
		xerrors.ErrCodeInvalidFit,
		xerrors.ErrCodeInvalidPage:
		return http.StatusBadRequest
	case xerrors.ErrCodeNotFound, xerrors.ErrCodeImageNotFound:
		return http.StatusNotFound
	case xerrors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case xerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case xerrors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
