// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package sec_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranminhvu/taskhive/internal/platform/sec"
)

func newTestTokenService(t *testing.T) *sec.TokenService {
	t.Helper()
	service, err := sec.NewTokenService("test-secret-key", "taskhive.work")
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_EmptySecret verifies that a misconfigured deployment
fails at construction time.
*/
func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", "taskhive.work")
	assert.Error(t, err)
}

/*
TestTokenService_IssueAndVerify covers the round trip: a freshly issued token
verifies and carries the embedded identity claims.
*/
func TestTokenService_IssueAndVerify(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.Issue("user-123", "Minh Vu", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "Minh Vu", claims.Name)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "taskhive.work", claims.Issuer)
}

/*
TestTokenService_Verify_BearerPrefix verifies that the transport scheme label
is stripped regardless of case.
*/
func TestTokenService_Verify_BearerPrefix(t *testing.T) {
	service := newTestTokenService(t)

	token, err := service.Issue("user-123", "Minh Vu", time.Hour)
	require.NoError(t, err)

	for _, prefix := range []string{"Bearer ", "bearer ", "BEARER "} {
		claims, err := service.Verify(prefix + token)
		require.NoError(t, err, "prefix %q should be stripped", prefix)
		assert.Equal(t, "user-123", claims.UserID)
	}
}

/*
TestTokenService_Verify_FailureModes verifies that each verification failure
is classified into its own sentinel error.
*/
func TestTokenService_Verify_FailureModes(t *testing.T) {
	service := newTestTokenService(t)

	t.Run("expired_token", func(t *testing.T) {
		token, err := service.Issue("user-123", "Minh Vu", -time.Minute)
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, sec.ErrTokenExpired)
	})

	t.Run("bad_signature", func(t *testing.T) {
		otherService, err := sec.NewTokenService("a-different-secret", "taskhive.work")
		require.NoError(t, err)

		token, err := otherService.Issue("user-123", "Minh Vu", time.Hour)
		require.NoError(t, err)

		_, err = service.Verify(token)
		assert.ErrorIs(t, err, sec.ErrTokenBadSignature)
	})

	t.Run("malformed_token", func(t *testing.T) {
		_, err := service.Verify("not.a.jwt")
		assert.ErrorIs(t, err, sec.ErrTokenMalformed)
	})

	t.Run("empty_token", func(t *testing.T) {
		_, err := service.Verify("")
		assert.ErrorIs(t, err, sec.ErrTokenMalformed)
	})
}

/*
TestStripBearerPrefix checks the prefix helper in isolation.
*/
func TestStripBearerPrefix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"with_prefix", "Bearer abc123", "abc123"},
		{"lowercase_prefix", "bearer abc123", "abc123"},
		{"no_prefix", "abc123", "abc123"},
		{"prefix_only", "Bearer ", "Bearer "},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.StripBearerPrefix(tt.input))
		})
	}
}
