// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

/*
Package auth provides the HTTP delivery layer for user identity management.

It implements the gateway for the authentication lifecycle, from account
creation to login and email confirmation.

# Architecture

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Issues bearer tokens; never sets auth cookies.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/rolodex-app/rolodex/internal/platform/request"
	"github.com/rolodex-app/rolodex/internal/platform/respond"
	"github.com/rolodex-app/rolodex/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the user lifecycle entry points
// (Signup, Login, Email confirmation callbacks).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /signup          : Creates a new account.
//   - POST /login           : Authenticates and returns a bearer token.
//   - GET  /confirm/{token} : Confirms the account's email address.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/signup", handler.signup)
	router.Post("/login", handler.login)
	router.Get("/confirm/{token}", handler.confirmEmail)

	return router
}

// # Request Payloads

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
signup handles the creation of a new user account.

POST /api/v1/auth/signup

Description: Validates input, checks for identity conflicts, persists a new
unconfirmed account, and triggers the confirmation mail.

Request:
  - Body: signupRequest (Username, Password)

Response:
  - 201: {"new_user": username}
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ACCOUNT_EXISTS: Username already registered
*/
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	var input signupRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Email(FieldUsername, input.Username).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Signup(request.Context(), SignupInput{
		Username: input.Username,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]string{
		FieldNewUser: user.Username,
	})
}

/*
login authenticates a user and issues a session token.

POST /api/v1/auth/login

Description: Verifies credentials, requires a confirmed email address, and
returns a short-lived bearer token.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: {access_token, token_type, expires_in}
  - 401: UNKNOWN_USER | BAD_PASSWORD | EMAIL_UNCONFIRMED
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Username: input.Username,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]interface{}{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   session.TokenType,
		FieldExpiresIn:   session.ExpiresIn,
	})
}

/*
confirmEmail confirms the account's email address via a signed token.

GET /api/v1/auth/confirm/{token}

Description: The link target of the confirmation mail. Re-confirming an
already confirmed account is an idempotent success.

Response:
  - 200: {"message": "Your email is confirmed" | "Your email is already confirmed"}
  - 400: VERIFICATION_ERROR: Invalid, expired, or wrong-purpose token
*/
func (handler *Handler) confirmEmail(writer http.ResponseWriter, request *http.Request) {
	token := requestutil.Param(request, FieldToken)

	if token == "" {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	message, err := handler.authService.ConfirmEmail(request.Context(), token)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: message,
	})
}
