// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

/*
Package auth implements the core identity and access management (IAM) system.

It handles everything from user registration and secure password hashing to
stateless session tokens (JWT) backed by a Redis snapshot cache.

Architecture:

  - Service: Orchestrates business logic (Signup, Login, ConfirmEmail, ResolveBearer).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Session cache).
  - Security: Leverages Bcrypt hashing and HMAC-signed purpose-scoped JWTs.

The package ensures that identity data remains consistent and secure throughout
the platform's lifecycle.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rolodex-app/rolodex/internal/platform/apperr"
	"github.com/rolodex-app/rolodex/internal/platform/constants"
	"github.com/rolodex-app/rolodex/internal/platform/sec"
	"github.com/rolodex-app/rolodex/pkg/uuid"
)

// # Service Definition

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository  UserRepository
	sessionCache    SessionCacheRepository
	tokenProvider   TokenProvider
	confirmationSvc ConfirmationSender
	logger          *slog.Logger

	sessionTokenTTL time.Duration
	confirmTokenTTL time.Duration
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionCache SessionCacheRepository,
	tokenProv TokenProvider,
	confirmationSvc ConfirmationSender,
	logger *slog.Logger,
	sessionTokenTTL time.Duration,
	confirmTokenTTL time.Duration,
) *Service {
	return &Service{
		userRepository:  userRepo,
		sessionCache:    sessionCache,
		tokenProvider:   tokenProv,
		confirmationSvc: confirmationSvc,
		logger:          logger,
		sessionTokenTTL: sessionTokenTTL,
		confirmTokenTTL: confirmTokenTTL,
	}
}

// # Registration Flow

// SignupInput holds the data required to enroll a new member.
type SignupInput struct {
	Username string
	Password string
}

/*
Signup validates, hashes, and persists a brand new user account.

Description: Registers an unconfirmed account and dispatches the confirmation
mail as a fire-and-forget side effect; a delivery failure never fails signup.

Parameters:
  - context: context.Context
  - input: SignupInput

Returns:
  - *User: Created entity
  - err: ACCOUNT_EXISTS (if the username is taken) or storage errors
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*User, error) {

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.AccountExists()
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
		Confirmed:    false,
	}

	// Persist the user to the database. A concurrent signup racing past the
	// uniqueness probe above still loses here on the unique constraint.
	if err := service.userRepository.Create(context, user); err != nil {
		if apperr.HasCode(err, "CONFLICT") {
			return nil, apperr.AccountExists()
		}
		return nil, fmt.Errorf("auth_service_signup_failed: %w", err)
	}

	// Dispatch the confirmation mail without blocking the signup response.
	service.sendConfirmation(context, user)

	return user, nil
}

// sendConfirmation issues an email-confirmation token and hands it to the
// sender in a background goroutine detached from the request lifetime.
func (service *Service) sendConfirmation(requestContext context.Context, user *User) {
	token, err := service.tokenProvider.IssueToken(user.Username, sec.PurposeEmailConfirm, service.confirmTokenTTL)
	if err != nil {
		service.logger.Error("auth_confirmation_token_failed",
			slog.String("username", user.Username),
			slog.Any("error", err),
		)
		return
	}

	// Detach from the request so mail delivery survives the HTTP response.
	backgroundContext := context.WithoutCancel(requestContext)

	go func() {
		sendContext, cancel := context.WithTimeout(backgroundContext, constants.MailSendTimeout)
		defer cancel()

		if err := service.confirmationSvc.SendConfirmation(sendContext, user.Username, user.Username, token); err != nil {
			service.logger.Error("auth_confirmation_send_failed",
				slog.String("username", user.Username),
				slog.Any("error", err),
			)
		}
	}()
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64 // seconds
	User        *User
}

/*
Login validates user credentials and issues a session token.

Description: Verifies identity, performs constant-time password comparison,
issues a purpose-scoped session token, and writes the identity snapshot
through to the session cache.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Transport-ready session identifiers
  - err: UNKNOWN_USER, BAD_PASSWORD, EMAIL_UNCONFIRMED, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {

	// Look up the account by username. Only a missing row maps to the
	// credential taxonomy; an infrastructure failure must surface as such
	// rather than masquerade as bad credentials.
	user, err := service.userRepository.FindByUsername(context, input.Username)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return nil, apperr.UnknownUser()
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.BadPassword()
	}

	// Unconfirmed accounts cannot establish sessions
	if !user.Confirmed {
		return nil, apperr.EmailUnconfirmed()
	}

	// Generate the short-lived session token
	accessToken, err := service.tokenProvider.IssueToken(user.Username, sec.PurposeSession, service.sessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	// Write the snapshot through to the cache. TTL equals the token lifetime,
	// so the entry can never outlive the token. The cache is an optimization;
	// a write failure is logged but never fails the login.
	if err := service.sessionCache.Put(context, accessToken, user.Snapshot(), service.sessionTokenTTL); err != nil {
		service.logger.Warn("auth_session_cache_put_failed",
			slog.String("username", user.Username),
			slog.Any("error", err),
		)
	}

	return &LoginSession{
		AccessToken: accessToken,
		TokenType:   constants.BearerTokenType,
		ExpiresIn:   int64(service.sessionTokenTTL.Seconds()),
		User:        user,
	}, nil
}

// # Bearer Resolution

/*
ResolveBearer turns a bearer token into an authenticated identity.

Description: Verifies the session token, then consults the cache; on a hit
the durable store is not touched at all. On a miss the account is loaded by
the token subject and the cache is repopulated with the token's remaining
lifetime.

All failure modes collapse into a single UNAUTHENTICATED error with one fixed
message, so a caller cannot distinguish an expired token from a forged one or
from a deleted account.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *sec.Identity: Snapshot of the authenticated account
  - err: UNAUTHENTICATED
*/
func (service *Service) ResolveBearer(context context.Context, token string) (*sec.Identity, error) {

	// Claims are re-verified on every request; cached snapshots never bypass
	// signature or expiry checks.
	claims, err := service.tokenProvider.VerifyToken(token, sec.PurposeSession)
	if err != nil {
		return nil, apperr.Unauthenticated()
	}

	// Fast path: cache hit
	identity, err := service.sessionCache.Get(context, token)
	if err == nil {
		return identity, nil
	}

	// Slow path: durable lookup by token subject. The caller still sees only
	// UNAUTHENTICATED, but an infrastructure failure is logged as such so the
	// 500-class cause is not silently downgraded.
	user, err := service.userRepository.FindByUsername(context, claims.Subject)
	if err != nil {
		if !apperr.HasCode(err, "NOT_FOUND") {
			service.logger.Error("auth_bearer_lookup_failed",
				slog.String("username", claims.Subject),
				slog.Any("error", err),
			)
		}
		return nil, apperr.Unauthenticated()
	}

	// Repopulate with the token's remaining lifetime so the cached entry
	// still expires together with the token.
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			if err := service.sessionCache.Put(context, token, user.Snapshot(), remaining); err != nil {
				service.logger.Warn("auth_session_cache_repopulate_failed",
					slog.String("username", user.Username),
					slog.Any("error", err),
				)
			}
		}
	}

	return user.Snapshot(), nil
}

// # Email Confirmation

// Confirmation messages returned by [Service.ConfirmEmail].
const (
	MessageEmailConfirmed        = "Your email is confirmed"
	MessageEmailAlreadyConfirmed = "Your email is already confirmed"
)

/*
ConfirmEmail flips an account to confirmed using an email-confirmation token.

Description: The token must carry the email_confirm purpose; a session token
presented here fails verification outright. Confirming an already-confirmed
account is an idempotent success.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Human-readable confirmation message
  - err: VERIFICATION_ERROR or storage failures
*/
func (service *Service) ConfirmEmail(context context.Context, token string) (string, error) {

	claims, err := service.tokenProvider.VerifyToken(token, sec.PurposeEmailConfirm)
	if err != nil {
		return "", apperr.VerificationError()
	}

	user, err := service.userRepository.FindByUsername(context, claims.Subject)
	if err != nil {
		if apperr.HasCode(err, "NOT_FOUND") {
			return "", apperr.VerificationError()
		}
		return "", fmt.Errorf("auth_service_confirm_lookup_failed: %w", err)
	}

	// Idempotent: re-confirming is not an error
	if user.Confirmed {
		return MessageEmailAlreadyConfirmed, nil
	}

	if err := service.userRepository.MarkConfirmed(context, user.Username); err != nil {
		return "", fmt.Errorf("auth_service_confirm_failed: %w", err)
	}

	return MessageEmailConfirmed, nil
}

// # Authorization

/*
RequireRole checks that an identity holds at least the given role.

Parameters:
  - identity: *sec.Identity (nil means anonymous)
  - role: sec.UserRole

Returns:
  - err: UNAUTHENTICATED for anonymous callers, FORBIDDEN for insufficient roles
*/
func (service *Service) RequireRole(identity *sec.Identity, role sec.UserRole) error {
	if identity == nil {
		return apperr.Unauthenticated()
	}

	if !identity.Role.AtLeast(role) {
		return apperr.Forbidden("Insufficient permissions")
	}

	return nil
}
