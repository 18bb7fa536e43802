package service

import (
	"context"
	"io"
	"testing"

	"nuffjamz/internal/testimonials/repository"
	"nuffjamz/pkg/config"
	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/logger"
	"nuffjamz/pkg/model"
)

type mockTestimonialRepository struct {
	createFunc   func(ctx context.Context, testimonial *model.Testimonial) error
	findAllFunc  func(ctx context.Context, filter repository.Filter) ([]*model.Testimonial, error)
	setFlagsFunc func(ctx context.Context, id string, approved, featured *bool) (*model.Testimonial, error)
	deleteFunc   func(ctx context.Context, id string) error
}

func (m *mockTestimonialRepository) Create(ctx context.Context, testimonial *model.Testimonial) error {
	return m.createFunc(ctx, testimonial)
}

func (m *mockTestimonialRepository) FindAll(ctx context.Context, filter repository.Filter) ([]*model.Testimonial, error) {
	return m.findAllFunc(ctx, filter)
}

func (m *mockTestimonialRepository) SetFlags(ctx context.Context, id string, approved, featured *bool) (*model.Testimonial, error) {
	return m.setFlagsFunc(ctx, id, approved, featured)
}

func (m *mockTestimonialRepository) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

func testConfig() *config.Config {
	log := logger.New(logger.Config{
		Level:   logger.ERROR,
		Format:  logger.JSON,
		Output:  io.Discard,
		Service: "test",
	})
	return &config.Config{Log: log}
}

func validTestimonial() *model.Testimonial {
	return &model.Testimonial{
		ClientName: "Jane Doe",
		EventType:  model.EventWedding,
		Rating:     5,
		Text:       "Kept the dance floor packed all night. Book him.",
	}
}

// Public submissions always start unapproved, even if the payload
// claims otherwise.
func TestCreateTestimonialForcesModeration(t *testing.T) {
	repo := &mockTestimonialRepository{
		createFunc: func(ctx context.Context, testimonial *model.Testimonial) error {
			testimonial.ID = "65a1b2c3d4e5f6a7b8c9d0e1"
			return nil
		},
	}
	svc := NewTestimonialService(repo, testConfig())

	input := validTestimonial()
	input.Approved = true
	input.Featured = true

	created, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Approved || created.Featured {
		t.Errorf("created = {approved:%v featured:%v}, want both false", created.Approved, created.Featured)
	}
}

func TestCreateTestimonialValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(tm *model.Testimonial)
		wantField string
	}{
		{"bad name", func(tm *model.Testimonial) { tm.ClientName = "J" }, "clientName"},
		{"bad event type", func(tm *model.Testimonial) { tm.EventType = "rave" }, "eventType"},
		{"rating too low", func(tm *model.Testimonial) { tm.Rating = 0 }, "rating"},
		{"rating too high", func(tm *model.Testimonial) { tm.Rating = 6 }, "rating"},
		{"text too short", func(tm *model.Testimonial) { tm.Text = "great" }, "text"},
	}

	repoCalled := false
	repo := &mockTestimonialRepository{
		createFunc: func(ctx context.Context, testimonial *model.Testimonial) error {
			repoCalled = true
			return nil
		},
	}
	svc := NewTestimonialService(repo, testConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validTestimonial()
			tt.mutate(input)

			_, err := svc.Create(context.Background(), input)
			appErr, ok := err.(*apperrors.AppError)
			if !ok || appErr.Code != apperrors.CodeValidation {
				t.Fatalf("error = %v, want %s", err, apperrors.CodeValidation)
			}
			if len(appErr.Fields) != 1 || appErr.Fields[0].Field != tt.wantField {
				t.Errorf("fields = %v, want single %q error", appErr.Fields, tt.wantField)
			}
		})
	}

	if repoCalled {
		t.Error("repository must not be called for invalid testimonials")
	}
}

func TestGetPublicFilters(t *testing.T) {
	var gotFilter repository.Filter
	repo := &mockTestimonialRepository{
		findAllFunc: func(ctx context.Context, filter repository.Filter) ([]*model.Testimonial, error) {
			gotFilter = filter
			return []*model.Testimonial{{ID: "a", Approved: true}}, nil
		},
	}
	svc := NewTestimonialService(repo, testConfig())

	if _, err := svc.GetPublic(context.Background(), false); err != nil {
		t.Fatalf("GetPublic failed: %v", err)
	}
	if gotFilter.Approved == nil || !*gotFilter.Approved {
		t.Error("public listing must filter approved=true")
	}
	if gotFilter.Featured != nil {
		t.Error("featured filter should be unset without featuredOnly")
	}

	if _, err := svc.GetPublic(context.Background(), true); err != nil {
		t.Fatalf("GetPublic featured failed: %v", err)
	}
	if gotFilter.Featured == nil || !*gotFilter.Featured {
		t.Error("featuredOnly must filter featured=true")
	}
}

func TestGetAllUnfiltered(t *testing.T) {
	repo := &mockTestimonialRepository{
		findAllFunc: func(ctx context.Context, filter repository.Filter) ([]*model.Testimonial, error) {
			if filter.Approved != nil || filter.Featured != nil {
				t.Errorf("moderation listing must be unfiltered, got %+v", filter)
			}
			return nil, nil
		},
	}
	svc := NewTestimonialService(repo, testConfig())

	if _, err := svc.GetAll(context.Background()); err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
}

func TestSetFlags(t *testing.T) {
	repo := &mockTestimonialRepository{
		setFlagsFunc: func(ctx context.Context, id string, approved, featured *bool) (*model.Testimonial, error) {
			if id == "missing" {
				return nil, repository.ErrNotFound
			}
			tm := &model.Testimonial{ID: id}
			if approved != nil {
				tm.Approved = *approved
			}
			if featured != nil {
				tm.Featured = *featured
			}
			return tm, nil
		},
	}
	svc := NewTestimonialService(repo, testConfig())

	approve := true
	tm, err := svc.SetFlags(context.Background(), "abc", &FlagsUpdate{Approved: &approve})
	if err != nil || !tm.Approved {
		t.Errorf("SetFlags = %v, %v", tm, err)
	}

	_, err = svc.SetFlags(context.Background(), "abc", &FlagsUpdate{})
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("empty update: code = %s, want %s", appErr.Code, apperrors.CodeInvalidInput)
	}

	_, err = svc.SetFlags(context.Background(), "missing", &FlagsUpdate{Approved: &approve})
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("missing id: code = %s, want %s", appErr.Code, apperrors.CodeNotFound)
	}
}
