// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

/*
Package contacts implements the address-book domain.

Every contact belongs to exactly one account; all queries are scoped by the
owning user so one user's address book is invisible to every other user.

# Architecture

  - Service: Validation, ownership scoping, birthday window arithmetic.
  - Repository: Domain-defined interface implemented on PostgreSQL.
  - Handler: Thin chi-based transport layer, bearer-gated.
*/
package contacts

import "time"

// # Domain Entities

// Contact is a single address-book entry owned by a user.
type Contact struct {
	ID             string     `json:"id"`
	UserID         string     `json:"-"` // Owner, never exposed in responses.
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	AdditionalInfo *string    `json:"additional_info,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Filter narrows a contact listing.
type Filter struct {
	// Name matches first OR last name, case-insensitive substring.
	Name string
	// Email matches case-insensitive substring.
	Email string
}

// # Field Identifiers

const (
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldEmail          = "email"
	FieldPhone          = "phone"
	FieldBirthday       = "birthday"
	FieldAdditionalInfo = "additional_info"
)

// BirthdayWindowDays is the look-ahead span of the upcoming-birthdays listing.
const BirthdayWindowDays = 7
