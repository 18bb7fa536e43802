package service

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingserrors "nuffjamz/internal/bookings/errors"
	"nuffjamz/internal/bookings/repository"
	"nuffjamz/pkg/config"
	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/model"
	"nuffjamz/pkg/rules"
	"nuffjamz/pkg/sanitizer"
)

// Notifier sends the post-creation emails. Both sends are best-effort:
// a failed notification never fails the booking.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, booking *model.Booking) error
	SendAdminAlert(ctx context.Context, booking *model.Booking) error
}

// EventPublisher emits booking lifecycle events, also best-effort.
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	BookingStatusChanged(ctx context.Context, booking *model.Booking, previousStatus string) error
}

// RequestMeta carries transport-level audit fields into the entity.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// ListQuery describes a booking listing request. Zero values mean no
// status filter, newest-first by creation time, first page.
type ListQuery struct {
	Status    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// sortFields maps the exposed sort keys to their stored field names.
var sortFields = map[string]string{
	"createdAt": "created_at",
	"eventDate": "event_date",
	"name":      "name",
	"status":    "status",
}

type BookingService interface {
	Create(ctx context.Context, draft *model.BookingDraft, meta RequestMeta) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, q ListQuery) ([]*model.Booking, *model.Pagination, error)
	UpdateStatus(ctx context.Context, id string, update *model.StatusUpdate) (*model.Booking, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.BookingStats, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	notifier  Notifier
	publisher EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	notifier Notifier,
	publisher EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		notifier:  notifier,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create validates the submitted draft against the shared rules, builds
// the booking entity, and persists it. Nothing is written when
// validation fails. Notifications and events fire after the write and
// cannot affect the outcome.
func (s *bookingService) Create(ctx context.Context, draft *model.BookingDraft, meta RequestMeta) (*model.Booking, error) {
	if fieldErrs := rules.Apply(*draft, rules.CreateFields, rules.ServerGate); len(fieldErrs) > 0 {
		s.cfg.Log.Warn("Booking validation failed", "field_errors", len(fieldErrs))
		return nil, apperrors.Validation("Validation failed", fieldErrs)
	}

	booking := s.buildBooking(draft, meta)

	if err := s.repo.Create(ctx, booking); err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, apperrors.Internal("Failed to create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"event_type", booking.EventType,
		"event_date", booking.EventDate.Format("2006-01-02"),
	)

	s.notifyCreated(booking)

	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, id)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, q ListQuery) ([]*model.Booking, *model.Pagination, error) {
	if q.Status != "" {
		if err := validStatus(q.Status); err != nil {
			return nil, nil, err
		}
	}

	sortField, sortDesc, err := resolveSort(q.SortBy, q.SortOrder)
	if err != nil {
		return nil, nil, err
	}

	page := config.NormalizePage(q.Page)
	limit := config.NormalizePaginationLimit(q.Limit)

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, q.Status)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, q.Status, sortField, sortDesc, page, limit)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, nil, errCount
	}
	if errFind != nil {
		return nil, nil, errFind
	}

	totalPages := int((count + int64(limit) - 1) / int64(limit))
	pagination := &model.Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   count,
		ItemsPerPage: limit,
		HasNext:      page < totalPages,
		HasPrev:      page > 1,
	}

	return bookings, pagination, nil
}

// UpdateStatus overwrites the status unconditionally. Any status can
// move to any other; an update away from pending stamps respondedAt.
func (s *bookingService) UpdateStatus(ctx context.Context, id string, update *model.StatusUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}
	if err := validStatus(update.Status); err != nil {
		return nil, err
	}
	if update.QuotedPrice != nil && *update.QuotedPrice < 0 {
		return nil, apperrors.Validation("Validation failed", []apperrors.FieldError{
			{Field: "quotedPrice", Message: "Quoted price cannot be negative"},
		})
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, id)
	}

	var respondedAt *time.Time
	if update.Status != model.StatusPending && existing.RespondedAt == nil {
		now := time.Now().UTC().Truncate(time.Millisecond)
		respondedAt = &now
	}

	booking, err := s.repo.UpdateStatus(ctx, id, update, respondedAt)
	if err != nil {
		return nil, translateRepoError(err, id)
	}

	s.cfg.Log.Info("Booking status updated",
		"id", id,
		"previous_status", existing.Status,
		"status", booking.Status,
	)

	if booking.Status != existing.Status {
		s.notifyStatusChanged(booking, existing.Status)
	}

	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return translateRepoError(err, id)
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

func (s *bookingService) Stats(ctx context.Context) (*model.BookingStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to compute booking stats", "error", err)
		return nil, apperrors.Internal("Failed to compute booking stats", err)
	}
	return stats, nil
}

// --- Helpers ---

func (s *bookingService) buildBooking(draft *model.BookingDraft, meta RequestMeta) *model.Booking {
	// Validation already guaranteed the date parses.
	eventDate, _ := time.ParseInLocation("2006-01-02", draft.EventDate, time.Local)

	contactMethod := draft.ContactMethod
	if contactMethod == "" {
		contactMethod = model.ContactByEmail
	}

	return &model.Booking{
		Name:          sanitizer.TrimAndNormalize(draft.Name),
		Email:         sanitizer.NormalizeEmail(draft.Email),
		Phone:         sanitizer.TrimAndNormalize(draft.Phone),
		ContactMethod: contactMethod,

		EventType:     draft.EventType,
		EventDate:     eventDate,
		EventLocation: sanitizer.TrimAndNormalize(draft.EventLocation),
		GuestCount:    draft.GuestCount,
		Budget:        draft.Budget,

		MusicPreferences: sanitizer.TrimAndNormalize(draft.MusicPreferences),
		SpecialRequests:  sanitizer.TrimAndNormalize(draft.SpecialRequests),

		Status:    model.StatusPending,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
	}
}

// notifyCreated fans out the confirmation email, admin alert, and
// created event in the background. Each failure is logged and dropped.
func (s *bookingService) notifyCreated(booking *model.Booking) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
		defer cancel()

		if s.notifier != nil {
			if err := s.notifier.SendBookingConfirmation(ctx, booking); err != nil {
				s.cfg.Log.Error("Failed to send booking confirmation", "id", booking.ID, "error", err)
			}
			if err := s.notifier.SendAdminAlert(ctx, booking); err != nil {
				s.cfg.Log.Error("Failed to send admin alert", "id", booking.ID, "error", err)
			}
		}

		if s.publisher != nil {
			if err := s.publisher.BookingCreated(ctx, booking); err != nil {
				s.cfg.Log.Error("Failed to publish booking created event", "id", booking.ID, "error", err)
			}
		}
	}()
}

func (s *bookingService) notifyStatusChanged(booking *model.Booking, previousStatus string) {
	if s.publisher == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
		defer cancel()

		if err := s.publisher.BookingStatusChanged(ctx, booking, previousStatus); err != nil {
			s.cfg.Log.Error("Failed to publish status change event", "id", booking.ID, "error", err)
		}
	}()
}

// resolveSort translates the exposed sort parameters into a stored
// field name and direction. Defaults to created_at descending.
func resolveSort(sortBy, sortOrder string) (string, bool, error) {
	field := "created_at"
	if sortBy != "" {
		mapped, ok := sortFields[sortBy]
		if !ok {
			return "", false, apperrors.InvalidInput("Invalid sortBy field: " + sortBy)
		}
		field = mapped
	}

	switch sortOrder {
	case "", "desc":
		return field, true, nil
	case "asc":
		return field, false, nil
	}
	return "", false, apperrors.InvalidInput("Invalid sortOrder: " + sortOrder)
}

func validStatus(status string) *apperrors.AppError {
	for _, s := range model.Statuses {
		if status == s {
			return nil
		}
	}
	return apperrors.InvalidInput("Invalid status: " + status)
}

// A malformed id can never match a booking, so clients see it as the
// same not-found outcome as an unknown one.
func translateRepoError(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	return apperrors.Internal("Failed to access booking", err)
}
