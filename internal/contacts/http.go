// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package contacts

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rolodex-app/rolodex/internal/platform/apperr"
	"github.com/rolodex-app/rolodex/internal/platform/middleware"
	requestutil "github.com/rolodex-app/rolodex/internal/platform/request"
	"github.com/rolodex-app/rolodex/internal/platform/respond"
	"github.com/rolodex-app/rolodex/internal/platform/validate"
	"github.com/rolodex-app/rolodex/pkg/pagination"
)

// birthdayFormat is the wire format for the optional birthday field.
const birthdayFormat = "2006-01-02"

// # Definitions & Constructors

// Handler implements the address-book HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with contact routes.
//
// # Endpoints
//   - GET    /                   : Paginated listing with name/email filters.
//   - POST   /                   : Creates a contact.
//   - GET    /upcoming-birthdays : Contacts with a birthday in the next week.
//   - GET    /{id}               : Returns one contact.
//   - PUT    /{id}               : Partially updates a contact.
//   - DELETE /{id}               : Removes a contact.
//
// All routes require authentication; every operation is scoped to the bearer.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.listContacts)
	router.Post("/", handler.createContact)
	router.Get("/upcoming-birthdays", handler.upcomingBirthdays)
	router.Get("/{id}", handler.getContact)
	router.Put("/{id}", handler.updateContact)
	router.Delete("/{id}", handler.deleteContact)

	return router
}

// # Request Payloads

type contactRequest struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Birthday       *string `json:"birthday"`
	AdditionalInfo *string `json:"additional_info"`
}

type contactUpdateRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Birthday       *string `json:"birthday"`
	AdditionalInfo *string `json:"additional_info"`
}

// parseBirthday converts the optional wire date into a time value.
func parseBirthday(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse(birthdayFormat, *raw)
	if err != nil {
		return nil, apperr.ValidationError("Birthday must be formatted as YYYY-MM-DD")
	}

	return &parsed, nil
}

/*
listContacts returns a paginated page of the bearer's contacts.

GET /api/v1/contacts?name=&email=&page=&limit=

Response:
  - 200: Paginated contact list with metadata
  - 401: UNAUTHENTICATED
*/
func (handler *Handler) listContacts(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	filter := Filter{
		Name:  request.URL.Query().Get("name"),
		Email: request.URL.Query().Get("email"),
	}

	entries, total, err := handler.service.ListContacts(request.Context(), userID, filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entries, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
createContact persists a new contact for the bearer.

POST /api/v1/contacts

Response:
  - 201: Contact
  - 400: VALIDATION_ERROR
  - 401: UNAUTHENTICATED
*/
func (handler *Handler) createContact(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contactRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	birthday, err := parseBirthday(input.Birthday)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.service.CreateContact(request.Context(), userID, CreateInput{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Birthday:       birthday,
		AdditionalInfo: input.AdditionalInfo,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, contact)
}

/*
getContact returns one owned contact.

GET /api/v1/contacts/{id}

Response:
  - 200: Contact
  - 404: NOT_FOUND: Absent or owned by another user
*/
func (handler *Handler) getContact(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.service.GetContact(request.Context(), userID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contact)
}

/*
updateContact partially updates an owned contact.

PUT /api/v1/contacts/{id}

Description: Absent body fields keep their stored values. An explicit empty
birthday string clears the stored birthday.

Response:
  - 200: Contact: Merged result
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND
*/
func (handler *Handler) updateContact(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input contactUpdateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	// An explicit empty birthday clears the stored value; an absent field
	// keeps it.
	clearBirthday := input.Birthday != nil && *input.Birthday == ""
	birthday, err := parseBirthday(input.Birthday)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	contact, err := handler.service.UpdateContact(request.Context(), userID, requestutil.Param(request, "id"), UpdateInput{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Email:          input.Email,
		Phone:          input.Phone,
		Birthday:       birthday,
		ClearBirthday:  clearBirthday,
		AdditionalInfo: input.AdditionalInfo,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, contact)
}

/*
deleteContact removes an owned contact.

DELETE /api/v1/contacts/{id}

Response:
  - 204: No content
  - 404: NOT_FOUND
*/
func (handler *Handler) deleteContact(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteContact(request.Context(), userID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
upcomingBirthdays lists contacts whose birthday falls within the next week.

GET /api/v1/contacts/upcoming-birthdays

Response:
  - 200: Contact list ordered by upcoming date
  - 401: UNAUTHENTICATED
*/
func (handler *Handler) upcomingBirthdays(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	entries, err := handler.service.UpcomingBirthdays(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}
