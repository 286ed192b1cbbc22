// Package respond centralizes the JSON response envelope and the translation
// of domain errors into HTTP responses. Every endpoint answers with the same
// shape: {success, data?, message?, error?, error_description?}.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "leasegate/pkg/domain-errors"
)

// Envelope is the uniform response body.
type Envelope struct {
	Success          bool   `json:"success"`
	Data             any    `json:"data,omitempty"`
	Message          string `json:"message,omitempty"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes an arbitrary body with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors after WriteHeader cannot change the status code.
	_ = json.NewEncoder(w).Encode(body)
}

// OK writes a success envelope.
func OK(w http.ResponseWriter, status int, data any, message string) {
	WriteJSON(w, status, Envelope{Success: true, Data: data, Message: message})
}

// WriteError translates a domain error into an HTTP error envelope. Internal
// errors deliberately carry no description; their detail belongs in server
// logs only.
func WriteError(w http.ResponseWriter, err error) {
	var domainErr *dErrors.Error
	if !errors.As(err, &domainErr) {
		WriteJSON(w, http.StatusInternalServerError, Envelope{
			Success: false,
			Error:   string(dErrors.CodeInternal),
			Message: "Something went wrong. Please try again.",
		})
		return
	}

	env := Envelope{Success: false, Error: string(domainErr.Code)}
	if domainErr.Code == dErrors.CodeInternal {
		env.Message = "Something went wrong. Please try again."
	} else if domainErr.Message != "" {
		env.ErrorDescription = domainErr.Message
	}
	WriteJSON(w, StatusFor(domainErr.Code), env)
}

// StatusFor maps domain error codes to HTTP status codes.
func StatusFor(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput, dErrors.CodeValidation, dErrors.CodeInvariantViolation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden:
		return http.StatusForbidden
	case dErrors.CodeConflict, dErrors.CodeAlreadySigned, dErrors.CodeNotAvailable:
		return http.StatusConflict
	case dErrors.CodeTermsNotAccepted:
		return http.StatusPreconditionFailed
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
