// Copyright (c) 2026 Rolodex. All rights reserved.
// Author: dev@rolodex.app

package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolodex-app/rolodex/internal/platform/apperr"
	"github.com/rolodex-app/rolodex/internal/platform/sec"
	"github.com/rolodex-app/rolodex/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository that counts lookups, so
// tests can prove whether the durable store was consulted at all.
type fakeUserRepository struct {
	mu        sync.Mutex
	users     map[string]*auth.User
	findCalls int
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: map[string]*auth.User{}}
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.findCalls++

	user, ok := repo.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	clone := *user
	return &clone, nil
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.users[user.Username]; ok {
		return apperr.Conflict("Resource already exists")
	}
	clone := *user
	repo.users[user.Username] = &clone
	return nil
}

func (repo *fakeUserRepository) MarkConfirmed(_ context.Context, username string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.users[username]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Confirmed = true
	return nil
}

func (repo *fakeUserRepository) lookupCount() int {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.findCalls
}

// failingUserRepository simulates a durable-store outage: every call fails
// with an infrastructure error, never a missing-row one.
type failingUserRepository struct{}

func (failingUserRepository) FindByUsername(context.Context, string) (*auth.User, error) {
	return nil, apperr.Internal(errors.New("connection refused"))
}

func (failingUserRepository) Create(context.Context, *auth.User) error {
	return apperr.Internal(errors.New("connection refused"))
}

func (failingUserRepository) MarkConfirmed(context.Context, string) error {
	return apperr.Internal(errors.New("connection refused"))
}

// fakeSessionCache is an in-memory SessionCacheRepository without real expiry;
// tests control presence directly.
type fakeSessionCache struct {
	mu      sync.Mutex
	entries map[string]*sec.Identity
	ttls    map[string]time.Duration
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{
		entries: map[string]*sec.Identity{},
		ttls:    map[string]time.Duration{},
	}
}

func (cache *fakeSessionCache) Put(_ context.Context, token string, identity *sec.Identity, ttl time.Duration) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.entries[token] = identity
	cache.ttls[token] = ttl
	return nil
}

func (cache *fakeSessionCache) Get(_ context.Context, token string) (*sec.Identity, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()

	identity, ok := cache.entries[token]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return identity, nil
}

func (cache *fakeSessionCache) evict(token string) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	delete(cache.entries, token)
}

func (cache *fakeSessionCache) ttlOf(token string) (time.Duration, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	ttl, ok := cache.ttls[token]
	return ttl, ok
}

// recordingSender captures confirmation mail dispatches on a channel so tests
// can wait for the fire-and-forget goroutine.
type recordingSender struct {
	sent chan sentConfirmation
}

type sentConfirmation struct {
	username string
	address  string
	token    string
}

func newRecordingSender() *recordingSender {
	return &recordingSender{sent: make(chan sentConfirmation, 4)}
}

func (sender *recordingSender) SendConfirmation(_ context.Context, username, address, token string) error {
	sender.sent <- sentConfirmation{username: username, address: address, token: token}
	return nil
}

func (sender *recordingSender) waitForSend(t *testing.T) sentConfirmation {
	t.Helper()
	select {
	case confirmation := <-sender.sent:
		return confirmation
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation mail was never dispatched")
		return sentConfirmation{}
	}
}

// # Fixture

type serviceFixture struct {
	service *auth.Service
	users   *fakeUserRepository
	cache   *fakeSessionCache
	tokens  *sec.TokenService
	sender  *recordingSender
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	tokens, err := sec.NewTokenService("test-secret-key", "HS256", "rolodex.test")
	require.NoError(t, err)

	users := newFakeUserRepository()
	cache := newFakeSessionCache()
	sender := newRecordingSender()

	service := auth.NewService(
		users,
		cache,
		tokens,
		sender,
		slog.New(slog.DiscardHandler),
		15*time.Minute,
		7*24*time.Hour,
	)

	return &serviceFixture{
		service: service,
		users:   users,
		cache:   cache,
		tokens:  tokens,
		sender:  sender,
	}
}

// signupAndConfirm provisions a ready-to-login account.
func (fixture *serviceFixture) signupAndConfirm(t *testing.T, username, password string) {
	t.Helper()
	ctx := context.Background()

	_, err := fixture.service.Signup(ctx, auth.SignupInput{Username: username, Password: password})
	require.NoError(t, err)

	confirmation := fixture.sender.waitForSend(t)
	_, err = fixture.service.ConfirmEmail(ctx, confirmation.token)
	require.NoError(t, err)
}

// outageService wires the fixture's token provider over a user repository
// that is hard down.
func (fixture *serviceFixture) outageService() *auth.Service {
	return auth.NewService(
		failingUserRepository{},
		newFakeSessionCache(),
		fixture.tokens,
		fixture.sender,
		slog.New(slog.DiscardHandler),
		15*time.Minute,
		7*24*time.Hour,
	)
}

// # Registration

/*
TestSignup_CreatesUnconfirmedAccount verifies that a fresh signup persists an
unconfirmed user with the base role and dispatches the confirmation mail to
the username address.
*/
func TestSignup_CreatesUnconfirmedAccount(t *testing.T) {
	fixture := newServiceFixture(t)

	user, err := fixture.service.Signup(context.Background(), auth.SignupInput{
		Username: "wade@example.com",
		Password: "maximum-effort",
	})
	require.NoError(t, err)

	assert.Equal(t, "wade@example.com", user.Username)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.False(t, user.Confirmed)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "maximum-effort", user.PasswordHash)

	confirmation := fixture.sender.waitForSend(t)
	assert.Equal(t, "wade@example.com", confirmation.address)
	assert.NotEmpty(t, confirmation.token)
}

/*
TestSignup_DuplicateUsername verifies that signing up twice with the same
username yields ACCOUNT_EXISTS, not a second account.
*/
func TestSignup_DuplicateUsername(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	_, err := fixture.service.Signup(ctx, auth.SignupInput{Username: "wade@example.com", Password: "maximum-effort"})
	require.NoError(t, err)

	_, err = fixture.service.Signup(ctx, auth.SignupInput{Username: "wade@example.com", Password: "different-pass"})
	assert.True(t, apperr.HasCode(err, "ACCOUNT_EXISTS"))
}

// # Login

/*
TestLogin_UnknownUser verifies the distinct failure for a username that was
never registered.
*/
func TestLogin_UnknownUser(t *testing.T) {
	fixture := newServiceFixture(t)

	_, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Username: "ghost@example.com",
		Password: "whatever",
	})

	assert.True(t, apperr.HasCode(err, "UNKNOWN_USER"))
}

/*
TestLogin_StoreOutage verifies that a durable-store failure during login
surfaces as an infrastructure error, not as a credential failure.
*/
func TestLogin_StoreOutage(t *testing.T) {
	fixture := newServiceFixture(t)
	service := fixture.outageService()

	_, err := service.Login(context.Background(), auth.LoginInput{
		Username: "wade@example.com",
		Password: "maximum-effort",
	})

	require.Error(t, err)
	assert.False(t, apperr.HasCode(err, "UNKNOWN_USER"))
	assert.True(t, apperr.HasCode(err, "INTERNAL_ERROR"))
}

/*
TestLogin_BadPassword verifies the distinct failure for a wrong password on a
known account.
*/
func TestLogin_BadPassword(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.signupAndConfirm(t, "wade@example.com", "maximum-effort")

	_, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Username: "wade@example.com",
		Password: "minimum-effort",
	})

	assert.True(t, apperr.HasCode(err, "BAD_PASSWORD"))
}

/*
TestLogin_UnconfirmedEmail verifies that correct credentials on an unconfirmed
account are still rejected.
*/
func TestLogin_UnconfirmedEmail(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	_, err := fixture.service.Signup(ctx, auth.SignupInput{Username: "wade@example.com", Password: "maximum-effort"})
	require.NoError(t, err)

	_, err = fixture.service.Login(ctx, auth.LoginInput{
		Username: "wade@example.com",
		Password: "maximum-effort",
	})

	assert.True(t, apperr.HasCode(err, "EMAIL_UNCONFIRMED"))
}

/*
TestLogin_Success verifies that a confirmed account receives a bearer token
and that the identity snapshot is written through to the session cache with
the session lifetime as TTL.
*/
func TestLogin_Success(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.signupAndConfirm(t, "wade@example.com", "maximum-effort")

	session, err := fixture.service.Login(context.Background(), auth.LoginInput{
		Username: "wade@example.com",
		Password: "maximum-effort",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, int64((15 * time.Minute).Seconds()), session.ExpiresIn)

	cached, err := fixture.cache.Get(context.Background(), session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "wade@example.com", cached.Username)
	assert.True(t, cached.Confirmed)

	ttl, ok := fixture.cache.ttlOf(session.AccessToken)
	require.True(t, ok)
	assert.Equal(t, 15*time.Minute, ttl)
}

// # Bearer Resolution

/*
TestResolveBearer_CacheHitSkipsDurableStore verifies the core caching
property: when the snapshot is cached, resolving a bearer token performs no
durable-store lookup at all.
*/
func TestResolveBearer_CacheHitSkipsDurableStore(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.signupAndConfirm(t, "wade@example.com", "maximum-effort")
	ctx := context.Background()

	session, err := fixture.service.Login(ctx, auth.LoginInput{
		Username: "wade@example.com",
		Password: "maximum-effort",
	})
	require.NoError(t, err)

	lookupsBefore := fixture.users.lookupCount()

	identity, err := fixture.service.ResolveBearer(ctx, session.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "wade@example.com", identity.Username)
	assert.Equal(t, lookupsBefore, fixture.users.lookupCount())
}

/*
TestResolveBearer_CacheMissRepopulates verifies that an evicted entry forces
one durable lookup and that the snapshot is put back into the cache.
*/
func TestResolveBearer_CacheMissRepopulates(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.signupAndConfirm(t, "wade@example.com", "maximum-effort")
	ctx := context.Background()

	session, err := fixture.service.Login(ctx, auth.LoginInput{
		Username: "wade@example.com",
		Password: "maximum-effort",
	})
	require.NoError(t, err)

	fixture.cache.evict(session.AccessToken)
	lookupsBefore := fixture.users.lookupCount()

	identity, err := fixture.service.ResolveBearer(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "wade@example.com", identity.Username)
	assert.Equal(t, lookupsBefore+1, fixture.users.lookupCount())

	// Repopulated with the remaining token lifetime, never more than the full one
	_, err = fixture.cache.Get(ctx, session.AccessToken)
	require.NoError(t, err)
	ttl, ok := fixture.cache.ttlOf(session.AccessToken)
	require.True(t, ok)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}

/*
TestResolveBearer_RejectsGarbage verifies that malformed and forged tokens
collapse into the single UNAUTHENTICATED condition.
*/
func TestResolveBearer_RejectsGarbage(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	for _, token := range []string{"", "not-a-jwt", "aaaa.bbbb.cccc"} {
		_, err := fixture.service.ResolveBearer(ctx, token)
		assert.True(t, apperr.HasCode(err, "UNAUTHENTICATED"), "token %q", token)
	}
}

/*
TestResolveBearer_RejectsConfirmationToken verifies purpose enforcement: an
email-confirmation token can never establish an API session, even though it is
signed with the same key.
*/
func TestResolveBearer_RejectsConfirmationToken(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	_, err := fixture.service.Signup(ctx, auth.SignupInput{Username: "wade@example.com", Password: "maximum-effort"})
	require.NoError(t, err)
	confirmation := fixture.sender.waitForSend(t)

	_, err = fixture.service.ResolveBearer(ctx, confirmation.token)
	assert.True(t, apperr.HasCode(err, "UNAUTHENTICATED"))
}

/*
TestResolveBearer_DeletedAccount verifies that a valid token whose subject no
longer exists resolves to UNAUTHENTICATED on a cache miss.
*/
func TestResolveBearer_DeletedAccount(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	token, err := fixture.tokens.IssueToken("ghost@example.com", sec.PurposeSession, 15*time.Minute)
	require.NoError(t, err)

	_, err = fixture.service.ResolveBearer(ctx, token)
	assert.True(t, apperr.HasCode(err, "UNAUTHENTICATED"))
}

/*
TestResolveBearer_StoreOutage verifies that a durable-store failure on the
slow path still collapses into UNAUTHENTICATED for the caller.
*/
func TestResolveBearer_StoreOutage(t *testing.T) {
	fixture := newServiceFixture(t)
	service := fixture.outageService()

	token, err := fixture.tokens.IssueToken("wade@example.com", sec.PurposeSession, 15*time.Minute)
	require.NoError(t, err)

	_, err = service.ResolveBearer(context.Background(), token)
	assert.True(t, apperr.HasCode(err, "UNAUTHENTICATED"))
}

// # Email Confirmation

/*
TestConfirmEmail_Flow verifies the full confirmation lifecycle: first call
confirms, second call reports the idempotent already-confirmed message.
*/
func TestConfirmEmail_Flow(t *testing.T) {
	fixture := newServiceFixture(t)
	ctx := context.Background()

	_, err := fixture.service.Signup(ctx, auth.SignupInput{Username: "wade@example.com", Password: "maximum-effort"})
	require.NoError(t, err)
	confirmation := fixture.sender.waitForSend(t)

	message, err := fixture.service.ConfirmEmail(ctx, confirmation.token)
	require.NoError(t, err)
	assert.Equal(t, auth.MessageEmailConfirmed, message)

	message, err = fixture.service.ConfirmEmail(ctx, confirmation.token)
	require.NoError(t, err)
	assert.Equal(t, auth.MessageEmailAlreadyConfirmed, message)
}

/*
TestConfirmEmail_RejectsSessionToken verifies purpose enforcement in the other
direction: a session token presented at the confirmation endpoint fails with
VERIFICATION_ERROR.
*/
func TestConfirmEmail_RejectsSessionToken(t *testing.T) {
	fixture := newServiceFixture(t)
	fixture.signupAndConfirm(t, "wade@example.com", "maximum-effort")
	ctx := context.Background()

	session, err := fixture.service.Login(ctx, auth.LoginInput{
		Username: "wade@example.com",
		Password: "maximum-effort",
	})
	require.NoError(t, err)

	_, err = fixture.service.ConfirmEmail(ctx, session.AccessToken)
	assert.True(t, apperr.HasCode(err, "VERIFICATION_ERROR"))
}

/*
TestConfirmEmail_RejectsGarbageToken verifies that an unparseable token maps
to VERIFICATION_ERROR.
*/
func TestConfirmEmail_RejectsGarbageToken(t *testing.T) {
	fixture := newServiceFixture(t)

	_, err := fixture.service.ConfirmEmail(context.Background(), "definitely-not-a-token")
	assert.True(t, apperr.HasCode(err, "VERIFICATION_ERROR"))
}

/*
TestConfirmEmail_StoreOutage verifies that a durable-store failure during
confirmation surfaces as an infrastructure error, not as a bad token.
*/
func TestConfirmEmail_StoreOutage(t *testing.T) {
	fixture := newServiceFixture(t)
	service := fixture.outageService()

	token, err := fixture.tokens.IssueToken("wade@example.com", sec.PurposeEmailConfirm, time.Hour)
	require.NoError(t, err)

	_, err = service.ConfirmEmail(context.Background(), token)
	require.Error(t, err)
	assert.False(t, apperr.HasCode(err, "VERIFICATION_ERROR"))
	assert.True(t, apperr.HasCode(err, "INTERNAL_ERROR"))
}

// # Authorization

/*
TestRequireRole verifies the role gate for anonymous, insufficient, equal, and
superior roles.
*/
func TestRequireRole(t *testing.T) {
	fixture := newServiceFixture(t)

	err := fixture.service.RequireRole(nil, sec.RoleUser)
	assert.True(t, apperr.HasCode(err, "UNAUTHENTICATED"))

	member := &sec.Identity{Username: "wade@example.com", Role: sec.RoleUser}
	assert.NoError(t, fixture.service.RequireRole(member, sec.RoleUser))
	assert.True(t, apperr.HasCode(fixture.service.RequireRole(member, sec.RoleAdmin), "FORBIDDEN"))

	admin := &sec.Identity{Username: "root@rolodex.app", Role: sec.RoleAdmin}
	assert.NoError(t, fixture.service.RequireRole(admin, sec.RoleUser))
	assert.NoError(t, fixture.service.RequireRole(admin, sec.RoleAdmin))
}
