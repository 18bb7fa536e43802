package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "nuffjamz/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteSuccess(rec, map[string]string{"id": "abc"}, "done"); err != nil {
		t.Fatalf("WriteSuccess: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	env := decode(t, rec)
	if !env.Success || env.Message != "done" {
		t.Errorf("envelope = %+v", env)
	}
	if _, err := time.Parse(time.RFC3339, env.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC 3339: %v", env.Timestamp, err)
	}
}

func TestWriteCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteCreated(rec, nil, "created"); err != nil {
		t.Fatalf("WriteCreated: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
}

func TestWriteErrorAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	appErr := apperrors.Validation("Validation failed", []apperrors.FieldError{
		{Field: "email", Message: "Please provide a valid email address"},
	})
	if err := WriteError(rec, appErr); err != nil {
		t.Fatalf("WriteError: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	env := decode(t, rec)
	if env.Success {
		t.Error("expected failure envelope")
	}
	if env.Message != "Validation failed" {
		t.Errorf("message = %q", env.Message)
	}
	if len(env.Errors) != 1 || env.Errors[0].Field != "email" {
		t.Errorf("errors = %v", env.Errors)
	}
}

// Unknown errors must not leak internals: generic message, 500.
func TestWriteErrorUnknownError(t *testing.T) {
	rec := httptest.NewRecorder()
	if err := WriteError(rec, errors.New("pq: connection refused at 10.0.0.3")); err != nil {
		t.Fatalf("WriteError: %v", err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	env := decode(t, rec)
	if env.Message != "Internal server error" {
		t.Errorf("message = %q, internal detail must not leak", env.Message)
	}
}
