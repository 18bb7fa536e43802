package service

import (
	"context"
	"errors"

	"nuffjamz/internal/testimonials/repository"
	"nuffjamz/pkg/config"
	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/model"
	"nuffjamz/pkg/rules"
	"nuffjamz/pkg/sanitizer"
)

// FlagsUpdate toggles the moderation flags. Nil leaves a flag as-is.
type FlagsUpdate struct {
	Approved *bool `json:"approved,omitempty"`
	Featured *bool `json:"featured,omitempty"`
}

type TestimonialService interface {
	Create(ctx context.Context, testimonial *model.Testimonial) (*model.Testimonial, error)
	GetPublic(ctx context.Context, featuredOnly bool) ([]*model.Testimonial, error)
	GetAll(ctx context.Context) ([]*model.Testimonial, error)
	SetFlags(ctx context.Context, id string, update *FlagsUpdate) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

type testimonialService struct {
	repo repository.TestimonialRepository
	cfg  *config.Config
}

func NewTestimonialService(repo repository.TestimonialRepository, cfg *config.Config) TestimonialService {
	return &testimonialService{repo: repo, cfg: cfg}
}

// Create stores a new testimonial, unapproved until moderated.
func (s *testimonialService) Create(ctx context.Context, testimonial *model.Testimonial) (*model.Testimonial, error) {
	testimonial.ClientName = sanitizer.TrimAndNormalize(testimonial.ClientName)
	testimonial.Text = sanitizer.TrimAndNormalize(testimonial.Text)
	testimonial.Approved = false
	testimonial.Featured = false

	if fieldErrs := s.validate(testimonial); len(fieldErrs) > 0 {
		s.cfg.Log.Warn("Testimonial validation failed", "field_errors", len(fieldErrs))
		return nil, apperrors.Validation("Validation failed", fieldErrs)
	}

	if err := s.repo.Create(ctx, testimonial); err != nil {
		s.cfg.Log.Error("Failed to create testimonial", "error", err)
		return nil, apperrors.Internal("Failed to create testimonial", err)
	}

	s.cfg.Log.Info("Testimonial submitted", "id", testimonial.ID, "rating", testimonial.Rating)
	return testimonial, nil
}

// GetPublic lists approved testimonials, optionally only featured
// ones.
func (s *testimonialService) GetPublic(ctx context.Context, featuredOnly bool) ([]*model.Testimonial, error) {
	approved := true
	filter := repository.Filter{Approved: &approved}
	if featuredOnly {
		featured := true
		filter.Featured = &featured
	}

	testimonials, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.cfg.Log.Error("Failed to list testimonials", "error", err)
		return nil, apperrors.Internal("Failed to retrieve testimonials", err)
	}
	return testimonials, nil
}

// GetAll lists every testimonial for moderation.
func (s *testimonialService) GetAll(ctx context.Context) ([]*model.Testimonial, error) {
	testimonials, err := s.repo.FindAll(ctx, repository.Filter{})
	if err != nil {
		s.cfg.Log.Error("Failed to list testimonials", "error", err)
		return nil, apperrors.Internal("Failed to retrieve testimonials", err)
	}
	return testimonials, nil
}

func (s *testimonialService) SetFlags(ctx context.Context, id string, update *FlagsUpdate) (*model.Testimonial, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Testimonial ID cannot be empty")
	}
	if update.Approved == nil && update.Featured == nil {
		return nil, apperrors.InvalidInput("Nothing to update")
	}

	testimonial, err := s.repo.SetFlags(ctx, id, update.Approved, update.Featured)
	if err != nil {
		return nil, s.translate(err, id)
	}

	s.cfg.Log.Info("Testimonial flags updated",
		"id", id,
		"approved", testimonial.Approved,
		"featured", testimonial.Featured,
	)
	return testimonial, nil
}

func (s *testimonialService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Testimonial ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translate(err, id)
	}

	s.cfg.Log.Info("Testimonial deleted", "id", id)
	return nil
}

func (s *testimonialService) validate(t *model.Testimonial) []apperrors.FieldError {
	var fieldErrs []apperrors.FieldError

	if msg := rules.Name(t.ClientName); msg != "" {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "clientName", Message: msg})
	}
	if msg := rules.EventType(t.EventType); msg != "" {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "eventType", Message: msg})
	}
	if t.Rating < 1 || t.Rating > 5 {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "rating", Message: "Rating must be between 1 and 5"})
	}
	if len(t.Text) < 10 || len(t.Text) > 1000 {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "text", Message: "Testimonial text must be between 10 and 1000 characters"})
	}

	return fieldErrs
}

func (s *testimonialService) translate(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		return apperrors.NotFoundWithID("Testimonial", id)
	}
	return apperrors.Internal("Failed to access testimonial", err)
}
