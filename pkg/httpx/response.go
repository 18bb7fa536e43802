package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	apperrors "nuffjamz/pkg/errors"
)

// Envelope is the response shape shared by every endpoint: success flag,
// optional message/data, field errors on validation failure, and an
// RFC 3339 timestamp.
type Envelope struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message,omitempty"`
	Data      any                    `json:"data,omitempty"`
	Errors    []apperrors.FieldError `json:"errors,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, body Envelope) error {
	body.Timestamp = time.Now().UTC().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(body)
}

func WriteSuccess(w http.ResponseWriter, data any, message string) error {
	return WriteJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func WriteCreated(w http.ResponseWriter, data any, message string) error {
	return WriteJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteError maps an error to its HTTP status. AppErrors keep their
// specific message; anything else is reported generically so internal
// detail never leaks to the client.
func WriteError(w http.ResponseWriter, err error) error {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		return WriteJSON(w, http.StatusInternalServerError, Envelope{
			Success: false,
			Message: "Internal server error",
		})
	}

	return WriteJSON(w, appErr.StatusCode(), Envelope{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}
