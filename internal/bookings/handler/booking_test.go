package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"nuffjamz/internal/bookings/service"
	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/logger"
	"nuffjamz/pkg/model"
)

type mockBookingService struct {
	createFunc       func(ctx context.Context, draft *model.BookingDraft, meta service.RequestMeta) (*model.Booking, error)
	getByIDFunc      func(ctx context.Context, id string) (*model.Booking, error)
	getAllFunc       func(ctx context.Context, q service.ListQuery) ([]*model.Booking, *model.Pagination, error)
	updateStatusFunc func(ctx context.Context, id string, update *model.StatusUpdate) (*model.Booking, error)
	deleteFunc       func(ctx context.Context, id string) error
	statsFunc        func(ctx context.Context) (*model.BookingStats, error)
}

func (m *mockBookingService) Create(ctx context.Context, draft *model.BookingDraft, meta service.RequestMeta) (*model.Booking, error) {
	return m.createFunc(ctx, draft, meta)
}

func (m *mockBookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockBookingService) GetAll(ctx context.Context, q service.ListQuery) ([]*model.Booking, *model.Pagination, error) {
	return m.getAllFunc(ctx, q)
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, id string, update *model.StatusUpdate) (*model.Booking, error) {
	return m.updateStatusFunc(ctx, id, update)
}

func (m *mockBookingService) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockBookingService) Stats(ctx context.Context) (*model.BookingStats, error) {
	return m.statsFunc(ctx)
}

// envelope mirrors the JSON response shape for assertions.
type envelope struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message"`
	Data      json.RawMessage        `json:"data"`
	Errors    []apperrors.FieldError `json:"errors"`
	Timestamp string                 `json:"timestamp"`
}

func newTestRouter(svc service.BookingService) *httprouter.Router {
	log := logger.New(logger.Config{
		Level:  logger.ERROR,
		Format: logger.JSON,
		Output: io.Discard,
	})
	router := httprouter.New()
	NewBookingHandler(svc, log).RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *httprouter.Router, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("User-Agent", "test-agent")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not a JSON envelope: %v\n%s", err, rec.Body.String())
	}
	return rec, env
}

func TestCreateBookingEndpoint(t *testing.T) {
	var gotMeta service.RequestMeta
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, draft *model.BookingDraft, meta service.RequestMeta) (*model.Booking, error) {
			gotMeta = meta
			return &model.Booking{
				ID:     "65a1b2c3d4e5f6a7b8c9d0e1",
				Name:   draft.Name,
				Status: model.StatusPending,
			}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"eventType":"wedding","name":"John Smith","email":"john@example.com"}`
	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/bookings", body)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if !env.Success {
		t.Error("expected success envelope")
	}
	if !strings.Contains(env.Message, "24 hours") {
		t.Errorf("message = %q", env.Message)
	}
	if env.Timestamp == "" {
		t.Error("expected a timestamp")
	}
	if gotMeta.UserAgent != "test-agent" {
		t.Errorf("user agent = %q, want test-agent", gotMeta.UserAgent)
	}

	var booking model.Booking
	if err := json.Unmarshal(env.Data, &booking); err != nil {
		t.Fatalf("data: %v", err)
	}
	if booking.ID == "" || booking.Name != "John Smith" {
		t.Errorf("booking = %+v", booking)
	}
}

func TestCreateBookingMalformedBody(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/bookings", "{not json")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
}

// Validation errors surface as a 400 with the per-field list in the
// envelope.
func TestCreateBookingValidationErrors(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(ctx context.Context, draft *model.BookingDraft, meta service.RequestMeta) (*model.Booking, error) {
			return nil, apperrors.Validation("Validation failed", []apperrors.FieldError{
				{Field: "email", Message: "Please provide a valid email address"},
				{Field: "eventDate", Message: "Event date must be at least tomorrow"},
			})
		},
	}
	router := newTestRouter(svc)

	rec, env := doRequest(t, router, http.MethodPost, "/api/v1/bookings", `{"name":"John"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(env.Errors) != 2 {
		t.Fatalf("errors = %v, want 2 field errors", env.Errors)
	}
	if env.Errors[0].Field != "email" || env.Errors[1].Field != "eventDate" {
		t.Errorf("errors = %v", env.Errors)
	}
}

func TestGetBookingByID(t *testing.T) {
	svc := &mockBookingService{
		getByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			if id == "missing" {
				return nil, apperrors.NotFoundWithID("Booking", id)
			}
			return &model.Booking{ID: id, Status: model.StatusConfirmed}, nil
		},
	}
	router := newTestRouter(svc)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/bookings/id/abc123", "")
	if rec.Code != http.StatusOK || !env.Success {
		t.Errorf("status = %d success = %v", rec.Code, env.Success)
	}

	rec, env = doRequest(t, router, http.MethodGet, "/api/v1/bookings/id/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestGetAllBookings(t *testing.T) {
	svc := &mockBookingService{
		getAllFunc: func(ctx context.Context, q service.ListQuery) ([]*model.Booking, *model.Pagination, error) {
			want := service.ListQuery{Status: model.StatusPending, SortBy: "eventDate", SortOrder: "asc", Page: 2, Limit: 5}
			if q != want {
				t.Errorf("query = %+v, want %+v", q, want)
			}
			return []*model.Booking{{ID: "a"}}, &model.Pagination{CurrentPage: 2, TotalPages: 3, TotalItems: 11, ItemsPerPage: 5}, nil
		},
	}
	router := newTestRouter(svc)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/bookings?status=pending&sortBy=eventDate&sortOrder=asc&page=2&limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var page struct {
		Bookings   []*model.Booking  `json:"bookings"`
		Pagination *model.Pagination `json:"pagination"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("data: %v", err)
	}
	if len(page.Bookings) != 1 || page.Pagination.TotalItems != 11 {
		t.Errorf("page = %+v", page)
	}
}

// An empty result marshals as [] rather than null.
func TestGetAllBookingsEmptyList(t *testing.T) {
	svc := &mockBookingService{
		getAllFunc: func(ctx context.Context, q service.ListQuery) ([]*model.Booking, *model.Pagination, error) {
			return nil, &model.Pagination{CurrentPage: 1, ItemsPerPage: 10}, nil
		},
	}
	router := newTestRouter(svc)

	_, env := doRequest(t, router, http.MethodGet, "/api/v1/bookings", "")

	if !strings.Contains(string(env.Data), `"bookings":[]`) {
		t.Errorf("data = %s, want an empty bookings array", env.Data)
	}
}

func TestGetAllBookingsBadPageParam(t *testing.T) {
	router := newTestRouter(&mockBookingService{})

	rec, _ := doRequest(t, router, http.MethodGet, "/api/v1/bookings?page=two", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateBookingStatusEndpoint(t *testing.T) {
	svc := &mockBookingService{
		updateStatusFunc: func(ctx context.Context, id string, update *model.StatusUpdate) (*model.Booking, error) {
			if update.Status != model.StatusConfirmed || update.AdminNotes != "deposit received" {
				t.Errorf("update = %+v", update)
			}
			now := time.Now()
			return &model.Booking{ID: id, Status: update.Status, RespondedAt: &now}, nil
		},
	}
	router := newTestRouter(svc)

	body := `{"status":"confirmed","adminNotes":"deposit received"}`
	rec, env := doRequest(t, router, http.MethodPatch, "/api/v1/bookings/id/abc123", body)

	if rec.Code != http.StatusOK || !env.Success {
		t.Errorf("status = %d success = %v", rec.Code, env.Success)
	}
}

// The static stats route must not be swallowed by the id wildcard.
func TestStatsEndpoint(t *testing.T) {
	svc := &mockBookingService{
		statsFunc: func(ctx context.Context) (*model.BookingStats, error) {
			return &model.BookingStats{Total: 10, Pending: 6, Confirmed: 4}, nil
		},
	}
	router := newTestRouter(svc)

	rec, env := doRequest(t, router, http.MethodGet, "/api/v1/bookings/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var stats model.BookingStats
	if err := json.Unmarshal(env.Data, &stats); err != nil {
		t.Fatalf("data: %v", err)
	}
	if stats.Total != 10 || stats.Pending != 6 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestDeleteBookingEndpoint(t *testing.T) {
	svc := &mockBookingService{
		deleteFunc: func(ctx context.Context, id string) error { return nil },
	}
	router := newTestRouter(svc)

	rec, env := doRequest(t, router, http.MethodDelete, "/api/v1/bookings/id/abc123", "")
	if rec.Code != http.StatusOK || !env.Success {
		t.Errorf("status = %d success = %v", rec.Code, env.Success)
	}
}
