package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"duo-tasks/internal/errors"
)

const internalErrorMessage = "Internal server error"

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// clientMessage returns the text shown to the caller. Server failures never leak their cause.
func clientMessage(err error) string {
	if statusFor(err) >= http.StatusInternalServerError {
		return internalErrorMessage
	}
	return errors.GetUserMessage(err)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if errors.ShouldLogError(err) {
		attrs := []any{"method", r.Method, "path", r.URL.Path, "error", err.Error()}
		if appErr, ok := errors.AsAppError(err); ok {
			attrs = append(attrs, appErr.LogAttrs()...)
		}
		slog.Error("request failed", attrs...)
	}

	body := errorBody{Error: clientMessage(err)}
	if status < http.StatusInternalServerError {
		body.Code = errors.GetErrorCode(err)
	}
	writeJSON(w, status, body)
}

// decodeJSON reads a JSON request body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && err != io.EOF {
		return errors.NewInvalidInputError("body", nil, "malformed JSON")
	}
	return nil
}
