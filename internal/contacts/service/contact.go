package service

import (
	"context"
	"errors"
	"sync"

	"nuffjamz/internal/contacts/repository"
	"nuffjamz/internal/contacts/validator"
	"nuffjamz/pkg/config"
	apperrors "nuffjamz/pkg/errors"
	"nuffjamz/pkg/model"
	"nuffjamz/pkg/sanitizer"
)

// Acknowledger sends the contact acknowledgement email, best-effort.
type Acknowledger interface {
	SendContactAck(ctx context.Context, contact *model.Contact) error
}

type ContactService interface {
	Create(ctx context.Context, contact *model.Contact, ipAddress string) (*model.Contact, error)
	GetAll(ctx context.Context, status string, page, limit int) ([]*model.Contact, *model.Pagination, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Contact, error)
}

type contactService struct {
	repo         repository.ContactRepository
	validator    *validator.ContactValidator
	acknowledger Acknowledger
	cfg          *config.Config
}

func NewContactService(
	repo repository.ContactRepository,
	contactValidator *validator.ContactValidator,
	acknowledger Acknowledger,
	cfg *config.Config,
) ContactService {
	return &contactService{
		repo:         repo,
		validator:    contactValidator,
		acknowledger: acknowledger,
		cfg:          cfg,
	}
}

func (s *contactService) Create(ctx context.Context, contact *model.Contact, ipAddress string) (*model.Contact, error) {
	s.applyDefaults(contact)
	s.sanitize(contact)
	contact.IPAddress = ipAddress

	if fieldErrs := s.validator.Validate(contact); len(fieldErrs) > 0 {
		s.cfg.Log.Warn("Contact validation failed", "field_errors", len(fieldErrs))
		return nil, apperrors.Validation("Validation failed", fieldErrs)
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		s.cfg.Log.Error("Failed to create contact", "error", err)
		return nil, apperrors.Internal("Failed to create contact", err)
	}

	s.cfg.Log.Info("Contact message received", "id", contact.ID, "urgency", contact.Urgency)

	if s.acknowledger != nil {
		go func(c model.Contact) {
			ctx, cancel := context.WithTimeout(context.Background(), s.cfg.RequestTimeout)
			defer cancel()
			if err := s.acknowledger.SendContactAck(ctx, &c); err != nil {
				s.cfg.Log.Error("Failed to send contact acknowledgement", "id", c.ID, "error", err)
			}
		}(*contact)
	}

	return contact, nil
}

func (s *contactService) GetAll(ctx context.Context, status string, page, limit int) ([]*model.Contact, *model.Pagination, error) {
	if status != "" && !validContactStatus(status) {
		return nil, nil, apperrors.InvalidInput("Invalid status: " + status)
	}

	page = config.NormalizePage(page)
	limit = config.NormalizePaginationLimit(limit)

	var count int64
	var contacts []*model.Contact
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, status)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count contacts", "error", errCount)
			errCount = apperrors.Internal("Failed to count contacts", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		contacts, errFind = s.repo.FindAll(ctx, status, page, limit)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list contacts", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve contacts", errFind)
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

	return contacts, pagination, nil
}

func (s *contactService) UpdateStatus(ctx context.Context, id, status string) (*model.Contact, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Contact ID cannot be empty")
	}
	if !validContactStatus(status) {
		return nil, apperrors.InvalidInput("Invalid status: " + status)
	}

	contact, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Contact", id)
		}
		return nil, apperrors.Internal("Failed to update contact", err)
	}

	s.cfg.Log.Info("Contact status updated", "id", id, "status", status)
	return contact, nil
}

func (s *contactService) applyDefaults(c *model.Contact) {
	if c.Status == "" {
		c.Status = model.ContactNew
	}
	if c.Urgency == "" {
		c.Urgency = "normal"
	}
}

func (s *contactService) sanitize(c *model.Contact) {
	c.Name = sanitizer.TrimAndNormalize(c.Name)
	c.Email = sanitizer.NormalizeEmail(c.Email)
	c.Phone = sanitizer.TrimAndNormalize(c.Phone)
	c.Subject = sanitizer.TrimAndNormalize(c.Subject)
	c.Message = sanitizer.TrimAndNormalize(c.Message)
}

func validContactStatus(status string) bool {
	for _, s := range model.ContactStatuses {
		if status == s {
			return true
		}
	}
	return false
}
