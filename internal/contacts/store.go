// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package contacts

import (
	"context"
	"time"
)

// ContactRepository defines the data access contract for the contacts domain.
//
// # Architecture
//
// The interface lives in the domain package because the service layer (the
// consumer) defines what it needs. Every method takes the owning userID and
// scopes its queries by it; a contact belonging to another user behaves
// exactly like a contact that does not exist.
type ContactRepository interface {
	// List returns a filtered, paginated slice of contacts and the total count.
	List(ctx context.Context, userID string, filter Filter, limit, offset int) ([]*Contact, int, error)

	// FindByID returns the contact with the given ID.
	//
	// It returns ErrNotFound if the contact is absent or owned by another user.
	FindByID(ctx context.Context, userID, id string) (*Contact, error)

	// Create persists a new contact to the store.
	//
	// The caller is responsible for generating and setting the ID before
	// calling this method.
	Create(ctx context.Context, contact *Contact) error

	// Update persists changes to an existing contact's mutable fields.
	Update(ctx context.Context, contact *Contact) error

	// Delete removes the contact row.
	//
	// It returns ErrNotFound if no owned row matched.
	Delete(ctx context.Context, userID, id string) error

	// ListBirthdaysBetween returns owned contacts whose birthday (month and
	// day, year ignored) falls inside the [from, to] calendar window.
	ListBirthdaysBetween(ctx context.Context, userID string, from, to time.Time) ([]*Contact, error)
}
