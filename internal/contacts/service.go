// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package contacts

import (
	"context"
	"log/slog"
	"time"

	"github.com/rolodex-app/rolodex/internal/platform/validate"
	"github.com/rolodex-app/rolodex/pkg/pointer"
	"github.com/rolodex-app/rolodex/pkg/uuid"
)

// # Service Definition

// Service implements address-book use cases scoped to one owning user.
type Service struct {
	repo   ContactRepository
	logger *slog.Logger
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(repo ContactRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// # Input Payloads

// CreateInput holds the data for a new contact.
type CreateInput struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Birthday       *time.Time
	AdditionalInfo *string
}

// UpdateInput describes a partial update; nil fields are left untouched.
// ClearBirthday removes the stored birthday, which a nil Birthday alone
// cannot express.
type UpdateInput struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Birthday       *time.Time
	ClearBirthday  bool
	AdditionalInfo *string
}

// # Use Cases

// ListContacts returns a filtered, paginated page of the user's contacts.
func (service *Service) ListContacts(context context.Context, userID string, filter Filter, limit, offset int) ([]*Contact, int, error) {
	return service.repo.List(context, userID, filter, limit, offset)
}

// GetContact returns one owned contact by ID.
func (service *Service) GetContact(context context.Context, userID, id string) (*Contact, error) {
	return service.repo.FindByID(context, userID, id)
}

// CreateContact validates and persists a new contact for the user.
func (service *Service) CreateContact(context context.Context, userID string, input CreateInput) (*Contact, error) {
	validator := &validate.Validator{}
	validator.Required(FieldFirstName, input.FirstName).
		MaxLen(FieldFirstName, input.FirstName, 100).
		Required(FieldLastName, input.LastName).
		MaxLen(FieldLastName, input.LastName, 100).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldPhone, input.Phone, 30)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	contact := &Contact{
		ID:             uuid.New(),
		UserID:         userID,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Birthday:       input.Birthday,
		AdditionalInfo: input.AdditionalInfo,
	}

	if err := service.repo.Create(context, contact); err != nil {
		return nil, err
	}

	service.logger.Info("contact_created",
		slog.String("contact_id", contact.ID),
		slog.String("user_id", userID),
	)

	return contact, nil
}

// UpdateContact applies a partial update to an owned contact.
//
// Absent fields keep their stored values; validation runs on the merged
// result, not on the sparse input.
func (service *Service) UpdateContact(context context.Context, userID, id string, input UpdateInput) (*Contact, error) {
	contact, err := service.repo.FindByID(context, userID, id)
	if err != nil {
		return nil, err
	}

	contact.FirstName = pointer.Fallback(input.FirstName, contact.FirstName)
	contact.LastName = pointer.Fallback(input.LastName, contact.LastName)
	contact.Email = pointer.Fallback(input.Email, contact.Email)
	contact.Phone = pointer.Fallback(input.Phone, contact.Phone)
	switch {
	case input.ClearBirthday:
		contact.Birthday = nil
	case input.Birthday != nil:
		contact.Birthday = input.Birthday
	}
	if input.AdditionalInfo != nil {
		contact.AdditionalInfo = input.AdditionalInfo
	}

	validator := &validate.Validator{}
	validator.Required(FieldFirstName, contact.FirstName).
		MaxLen(FieldFirstName, contact.FirstName, 100).
		Required(FieldLastName, contact.LastName).
		MaxLen(FieldLastName, contact.LastName, 100).
		Required(FieldEmail, contact.Email).
		Email(FieldEmail, contact.Email).
		MaxLen(FieldPhone, contact.Phone, 30)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, contact); err != nil {
		return nil, err
	}

	service.logger.Info("contact_updated",
		slog.String("contact_id", contact.ID),
		slog.String("user_id", userID),
	)

	return contact, nil
}

// DeleteContact removes an owned contact.
func (service *Service) DeleteContact(context context.Context, userID, id string) error {
	if err := service.repo.Delete(context, userID, id); err != nil {
		return err
	}

	service.logger.Warn("contact_deleted",
		slog.String("contact_id", id),
		slog.String("user_id", userID),
	)

	return nil
}

// UpcomingBirthdays returns contacts whose birthday falls within the next
// [BirthdayWindowDays] days, today included. Years are ignored.
func (service *Service) UpcomingBirthdays(context context.Context, userID string) ([]*Contact, error) {
	from := time.Now()
	to := from.AddDate(0, 0, BirthdayWindowDays)

	return service.repo.ListBirthdaysBetween(context, userID, from, to)
}
