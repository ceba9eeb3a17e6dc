// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rolodex-app/rolodex/internal/platform/apperr"
	"github.com/rolodex-app/rolodex/internal/platform/middleware"
	requestutil "github.com/rolodex-app/rolodex/internal/platform/request"
	"github.com/rolodex-app/rolodex/internal/platform/respond"
)

// maxAvatarBytes caps the accepted multipart upload size.
const maxAvatarBytes = 5 << 20 // 5 MiB

// # Definitions & Constructors

// Handler implements profile-related HTTP endpoints.
type Handler struct {
	accountService *Service
	profileLimiter func(http.Handler) http.Handler
}

// NewHandler constructs a new [Handler].
//
// profileLimiter is the tight per-IP rate limiter applied to the /me route on
// top of the global one.
func NewHandler(service *Service, profileLimiter func(http.Handler) http.Handler) *Handler {
	return &Handler{
		accountService: service,
		profileLimiter: profileLimiter,
	}
}

// Routes returns a [chi.Router] configured with account-specific routes.
//
// # Endpoints
//   - GET   /me     : Returns the bearer's profile (tightly rate limited).
//   - PATCH /avatar : Uploads a new avatar image.
//
// All routes require authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.With(handler.profileLimiter).Get("/me", handler.me)
	router.Patch("/avatar", handler.updateAvatar)

	return router
}

/*
me returns the profile of the authenticated bearer.

GET /api/v1/account/me

Response:
  - 200: Account: Durable profile view
  - 401: UNAUTHENTICATED
  - 429: TOO_MANY_REQUESTS: Per-route limit exceeded
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.accountService.GetProfile(request.Context(), identity.Username)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profile)
}

/*
updateAvatar accepts a multipart avatar upload and stores it in object storage.

PATCH /api/v1/account/avatar

Request:
  - Body: multipart/form-data with an "avatar" file part

Response:
  - 200: {"message": "Avatar updated", "avatar_url": url}
  - 400: VALIDATION_ERROR: Missing or oversized file part
  - 401: UNAUTHENTICATED
*/
func (handler *Handler) updateAvatar(writer http.ResponseWriter, request *http.Request) {
	identity, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, maxAvatarBytes)
	if err := request.ParseMultipartForm(maxAvatarBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart payload"))
		return
	}

	file, header, err := request.FormFile(FieldAvatar)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Missing 'avatar' file part"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	avatarURL, err := handler.accountService.UpdateAvatar(request.Context(), identity.Username, file, contentType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage:   "Avatar updated",
		FieldAvatarURL: avatarURL,
	})
}
