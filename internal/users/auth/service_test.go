// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranminhvu/taskhive/internal/platform/apperr"
	"github.com/tranminhvu/taskhive/internal/platform/sec"
	"github.com/tranminhvu/taskhive/internal/users/auth"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository. Its mutex plus
// single-winner Create mirrors the database's unique email index.
type fakeUserRepository struct {
	mu      sync.Mutex
	byEmail map[string]*auth.User
	byID    map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byEmail: make(map[string]*auth.User),
		byID:    make(map[string]*auth.User),
	}
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.byEmail[user.Email]; exists {
		return apperr.Conflict("Email is already registered")
	}

	copied := *user
	repo.byEmail[user.Email] = &copied
	repo.byID[user.ID] = &copied
	return nil
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repo *fakeUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	user, ok := repo.byID[userID]
	if !ok {
		return apperr.NotFound("User")
	}
	user.PasswordHash = newHash
	return nil
}

// fakeResetTokenRepository is an in-memory ResetTokenRepository.
type fakeResetTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]string
}

func newFakeResetTokenRepository() *fakeResetTokenRepository {
	return &fakeResetTokenRepository{tokens: make(map[string]string)}
}

func (repo *fakeResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.tokens[token] = userID
	return nil
}

func (repo *fakeResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	userID, ok := repo.tokens[token]
	if !ok {
		return "", apperr.NotFound("Reset token")
	}
	return userID, nil
}

func (repo *fakeResetTokenRepository) Delete(_ context.Context, token string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	delete(repo.tokens, token)
	return nil
}

// fakeTokenProvider issues deterministic tokens without signing.
type fakeTokenProvider struct{}

func (fakeTokenProvider) Issue(userID, _ string, _ time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

func newTestService() (*auth.Service, *fakeUserRepository, *fakeResetTokenRepository) {
	users := newFakeUserRepository()
	resets := newFakeResetTokenRepository()
	service := auth.NewService(users, resets, fakeTokenProvider{})
	return service, users, resets
}

// # Registration

/*
TestService_Register verifies the happy path: the account is persisted with a
hashed password and the response carries a usable access token.
*/
func TestService_Register(t *testing.T) {
	service, users, _ := newTestService()

	session, err := service.Register(context.Background(), auth.RegisterInput{
		Name:     "Minh Vu",
		Email:    "Minh@TaskHive.work",
		Password: "Sup3rSecret",
	})
	require.NoError(t, err)
	require.NotNil(t, session)

	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.User.ID)

	// The email is stored exactly as given, case included
	assert.Equal(t, "Minh@TaskHive.work", session.User.Email)

	// The stored credential must be a bcrypt digest, never the plaintext
	stored, err := users.FindByEmail(context.Background(), "Minh@TaskHive.work")
	require.NoError(t, err)
	assert.True(t, sec.IsSecureDigest(stored.PasswordHash))
	assert.NotEqual(t, "Sup3rSecret", stored.PasswordHash)
}

/*
TestService_Register_DuplicateEmail verifies that a second registration for
the same address is rejected with a CONFLICT error.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Name: "First", Email: "dup@taskhive.work", Password: "Sup3rSecret",
	})
	require.NoError(t, err)

	_, err = service.Register(context.Background(), auth.RegisterInput{
		Name: "Second", Email: "dup@taskhive.work", Password: "An0therSecret",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

/*
TestService_Register_ConcurrentDuplicates races N registrations for the same
email and asserts exactly one winner. The store-level uniqueness guarantee,
not the service pre-check, is what enforces this.
*/
func TestService_Register_ConcurrentDuplicates(t *testing.T) {
	service, _, _ := newTestService()

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Register(context.Background(), auth.RegisterInput{
				Name: "Racer", Email: "race@taskhive.work", Password: "Sup3rSecret",
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes, conflicts := 0, 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
		conflicts++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

// # Login

/*
TestService_Login covers the four login outcomes: success, unknown email,
legacy plaintext credential, and wrong password.
*/
func TestService_Login(t *testing.T) {
	service, users, _ := newTestService()

	registered, err := service.Register(context.Background(), auth.RegisterInput{
		Name: "Minh Vu", Email: "minh@taskhive.work", Password: "Sup3rSecret",
	})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		session, err := service.Login(context.Background(), auth.LoginInput{
			Email: "minh@taskhive.work", Password: "Sup3rSecret",
		})
		require.NoError(t, err)
		assert.Equal(t, "token-for-"+registered.User.ID, session.AccessToken)
	})

	t.Run("email_case_sensitive", func(t *testing.T) {
		// Emails are compared literally, so a differently-cased variant is a
		// different, unknown address
		_, err := service.Login(context.Background(), auth.LoginInput{
			Email: "MINH@TaskHive.Work", Password: "Sup3rSecret",
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("unknown_email", func(t *testing.T) {
		_, err := service.Login(context.Background(), auth.LoginInput{
			Email: "ghost@taskhive.work", Password: "Sup3rSecret",
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
	})

	t.Run("wrong_password", func(t *testing.T) {
		_, err := service.Login(context.Background(), auth.LoginInput{
			Email: "minh@taskhive.work", Password: "WrongPassword1",
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "UNAUTHORIZED", ae.Code)
	})

	t.Run("legacy_plaintext_credential", func(t *testing.T) {
		// Simulate an account created before hashed storage
		legacy := &auth.User{ID: "legacy-id", Name: "Old Timer", Email: "legacy@taskhive.work", PasswordHash: "plaintext-password"}
		require.NoError(t, users.Create(context.Background(), legacy))

		_, err := service.Login(context.Background(), auth.LoginInput{
			Email: "legacy@taskhive.work", Password: "plaintext-password",
		})
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INSECURE_CREDENTIAL", ae.Code)
	})
}

// # Password Recovery

/*
TestService_PasswordReset walks the full recovery loop: request a token,
reset the password, log in with the new credential, and confirm the token
is single-use.
*/
func TestService_PasswordReset(t *testing.T) {
	service, _, resets := newTestService()

	_, err := service.Register(context.Background(), auth.RegisterInput{
		Name: "Minh Vu", Email: "minh@taskhive.work", Password: "Sup3rSecret",
	})
	require.NoError(t, err)

	// Request a token
	token, err := service.RequestPasswordReset(context.Background(), "minh@taskhive.work")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Storage holds a digest of the token, never the raw value, so a leaked
	// snapshot cannot be replayed
	require.Len(t, resets.tokens, 1)
	_, rawStored := resets.tokens[token]
	assert.False(t, rawStored)

	// Reset to a new password
	require.NoError(t, service.ResetPassword(context.Background(), token, "N3wSecretHere"))

	// Old password no longer works
	_, err = service.Login(context.Background(), auth.LoginInput{
		Email: "minh@taskhive.work", Password: "Sup3rSecret",
	})
	assert.Error(t, err)

	// New password works
	_, err = service.Login(context.Background(), auth.LoginInput{
		Email: "minh@taskhive.work", Password: "N3wSecretHere",
	})
	assert.NoError(t, err)

	// Token is single-use
	err = service.ResetPassword(context.Background(), token, "Y3tAnotherOne")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_RequestPasswordReset_UnknownEmail verifies the anti-enumeration
behavior: an unknown address is silently accepted.
*/
func TestService_RequestPasswordReset_UnknownEmail(t *testing.T) {
	service, _, _ := newTestService()

	token, err := service.RequestPasswordReset(context.Background(), "ghost@taskhive.work")
	assert.NoError(t, err)
	assert.Empty(t, token)
}
