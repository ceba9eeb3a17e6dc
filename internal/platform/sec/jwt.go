// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, Token Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the auth package's TokenProvider interface.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPurpose distinguishes the two token kinds sharing one signing mechanism.
//
// Every issued token embeds its purpose as a claim and every verification call
// site states the purpose it expects, so a session token replayed at the
// confirmation endpoint (or vice versa) fails verification outright.
type TokenPurpose string

const (
	// PurposeSession marks short-lived bearer tokens for API authentication.
	PurposeSession TokenPurpose = "session"

	// PurposeEmailConfirm marks long-lived single-purpose confirmation tokens.
	PurposeEmailConfirm TokenPurpose = "email_confirm"
)

// Internal diagnostics for token verification failures.
//
// # Security
//
// Callers must not forward the expired/invalid distinction to the token
// bearer; both collapse into one generic unauthenticated condition at the
// HTTP boundary.
var (
	// ErrTokenExpired marks a structurally valid token past its exp claim.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenInvalid marks any signature, decoding, or purpose failure.
	ErrTokenInvalid = errors.New("sec: token invalid")
)

// AuthClaims represents the payload embedded inside an issued token.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Purpose pins the token to the flow it was issued for.
	Purpose TokenPurpose `json:"purpose"`
}

// TokenService handles generation and verification of signed tokens using a
// process-wide HMAC secret and a fixed algorithm identifier.
//
// Both are read-only after construction, so the service is safe for
// concurrent use without synchronization.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
}

// NewTokenService creates a new TokenService.
//
// algorithm must name one of the HMAC signature methods (HS256, HS384, HS512).
func NewTokenService(secretKey, algorithm, issuer string) (*TokenService, error) {
	if secretKey == "" {
		return nil, errors.New("sec: signing secret must not be empty")
	}

	switch algorithm {
	case jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg():
	default:
		return nil, fmt.Errorf("sec: unsupported signing algorithm %q", algorithm)
	}

	return &TokenService{
		secret: []byte(secretKey),
		method: jwt.GetSigningMethod(algorithm),
		issuer: issuer,
	}, nil
}

// IssueToken creates a signed token for the given subject and purpose.
//
// The output is a compact, URL-safe string carrying {sub, iss, iat, exp, purpose}.
func (service *TokenService) IssueToken(subject string, purpose TokenPurpose, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Purpose: purpose,
	}

	token := jwt.NewWithClaims(service.method, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature, expiry, and purpose of a token string.
//
// # Order
//
//  1. Signature integrity (wrong algorithm or tamper → [ErrTokenInvalid]).
//  2. Expiry against current time ([ErrTokenExpired]).
//  3. Purpose claim against the expected purpose ([ErrTokenInvalid]).
//
// A token's claims are re-verified on every call; validity is never cached.
func (service *TokenService) VerifyToken(tokenString string, purpose TokenPurpose) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithValidMethods([]string{service.method.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.Purpose != purpose {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
