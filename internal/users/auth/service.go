// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tranminhvu/taskhive/internal/platform/apperr"
	"github.com/tranminhvu/taskhive/internal/platform/sec"
	"github.com/tranminhvu/taskhive/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating access tokens.
type TokenProvider interface {
	// Issue creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - name: The display name of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	Issue(userID, name string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed before merging.
type Service struct {
	userRepository       UserRepository
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	resetRepo ResetTokenRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:       userRepo,
		resetTokenRepository: resetRepo,
		tokenProvider:        tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthSession represents a successfully authenticated user and their token.
type AuthSession struct {
	AccessToken string
	User        *User
}

/*
Register validates, hashes, and persists a brand new user account, then
issues an access token so the member is logged in immediately.

Description: Deep-enrollment of a new member, handling password hashing and
duplicate email detection.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthSession: Created entity plus signed access token
  - err: Conflict (if email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthSession, error) {

	// Emails are stored and compared literally. The published contract treats
	// "Ann@x.com" and "ann@x.com" as distinct addresses, and the unique index
	// is case-sensitive to match.
	email := input.Email

	// Verify email uniqueness. This is a fast-path check only; the store's
	// unique constraint is what actually guarantees one-winner semantics
	// under concurrent registration.
	_, err := service.userRepository.FindByEmail(context, email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
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
		Name:         input.Name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	// Persist the user to the database. A concurrent duplicate surfaces here
	// as Conflict from the store.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// Issue the access token so registration doubles as login
	accessToken, err := service.tokenProvider.Issue(user.ID, user.Name, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{
		AccessToken: accessToken,
		User:        user,
	}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues an access token.

Description: Resolves the account by email, rejects credentials that were
stored before hashed storage was introduced, performs constant-time password
comparison, and signs a fresh JWT.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready session identifiers
  - err: NotFound (unknown email), InsecureCredential (legacy storage),
    Unauthorized (wrong password), or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {

	// Resolve the account by the literal email, case included. Unknown emails
	// report NotFound rather than the generic Unauthorized so the client can
	// prompt for sign-up.
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, err
	}

	// Verify the password against the stored digest
	if err := sec.VerifyPassword(input.Password, user.PasswordHash); err != nil {

		// A digest without a bcrypt prefix predates hashed storage. Refuse
		// to compare against it and force the member through password reset.
		if errors.Is(err, sec.ErrInsecureDigest) {
			return nil, apperr.InsecureCredential()
		}

		return nil, apperr.Unauthorized("Invalid email or password")
	}

	// Generate the access token
	accessToken, err := service.tokenProvider.Issue(user.ID, user.Name, AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{
		AccessToken: accessToken,
		User:        user,
	}, nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure token and saves it to Redis.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Reset token
  - err: Generation errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {

	// Look up user.
	// NOTE: We don't return NOT_FOUND if the email doesn't exist to prevent user enumeration.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	// Generate reset token
	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	// Save to Redis, keyed by digest. The raw token exists only in the reset
	// link, so a leaked store snapshot cannot be replayed against the reset
	// endpoint.
	if err := service.resetTokenRepository.Set(context, sec.HashToken(token), user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, and updates the DB.
This is also the recovery path for accounts whose stored credential predates
hashed storage.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - err: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {

	// Tokens are stored by digest, so hash the presented value before lookup
	digest := sec.HashToken(token)

	// Retrieve the userID associated with the reset token from Redis
	userID, err := service.resetTokenRepository.Get(context, digest)
	if err != nil {
		return err
	}

	// Hash the new password securely
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	// Update the user's password in persistent storage
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Delete the used token from Redis
	_ = service.resetTokenRepository.Delete(context, digest)

	return nil
}
