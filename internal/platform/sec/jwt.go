// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via the [auth.TokenProvider] interface.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Errors

// Each verification failure mode gets its own sentinel so callers can pick
// user messaging: expired means "log in again", the others mean "invalid
// session". There is no revocation list; a token stays valid until expiry
// and logout is client-side discard only.
var (
	// ErrTokenMalformed is returned when the token cannot be parsed or decoded.
	ErrTokenMalformed = errors.New("sec: token is malformed")

	// ErrTokenBadSignature is returned when the signature does not match the
	// payload under the configured key.
	ErrTokenBadSignature = errors.New("sec: token signature is invalid")

	// ErrTokenExpired is returned when the token decodes fine and the signature
	// is valid, but the expiry timestamp has passed.
	ErrTokenExpired = errors.New("sec: token has expired")
)

// bearerPrefix is the optional transport scheme label before the token value.
const bearerPrefix = "Bearer "

// AuthClaims represents the payload embedded inside a JWT Access Token.
//
// # Why custom claims?
//
// By embedding the UserID and Name directly inside the JWT, the
// authentication middleware can reconstruct the active user context
// WITHOUT querying the database on every single API request.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the JWT payload small.
	UserID string `json:"uid"`
	Name   string `json:"unm"`
}

// TokenService handles generation and verification of JWT tokens using HS256.
//
// The signing secret is process-wide configuration loaded once at startup;
// [NewTokenService] rejects an empty secret so a misconfigured deployment
// fails before serving a single request.
type TokenService struct {
	secretKey []byte
	issuer    string
}

// NewTokenService creates a new TokenService from the configured HMAC secret.
func NewTokenService(secret, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: JWT signing secret must not be empty")
	}

	return &TokenService{
		secretKey: []byte(secret),
		issuer:    issuer,
	}, nil
}

// Issue creates a new signed access token for a user.
//
// # Claims
//   - sub/uid: the user ID.
//   - iat: issue timestamp.
//   - exp: issue timestamp plus timeToLive.
func (service *TokenService) Issue(userID, name string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		UserID: userID,
		Name:   name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secretKey)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity window of a JWT string and returns
// the embedded claims.
//
// # Flow
//  1. Strip the optional "Bearer " transport prefix.
//  2. Parse and verify the HMAC signature.
//  3. Classify failures into [ErrTokenExpired], [ErrTokenBadSignature],
//     or [ErrTokenMalformed].
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	tokenString = StripBearerPrefix(tokenString)

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secretKey, nil
	})

	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// StripBearerPrefix removes an optional "Bearer " scheme label from a token value.
func StripBearerPrefix(tokenString string) string {
	if len(tokenString) > len(bearerPrefix) && strings.EqualFold(tokenString[:len(bearerPrefix)], bearerPrefix) {
		return tokenString[len(bearerPrefix):]
	}
	return tokenString
}

// classifyTokenError maps jwt library failures to the package sentinels.
//
// Expiry is checked first: the library may join several claim errors, and an
// expired-but-authentic token must never be reported as malformed.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenBadSignature
	default:
		return ErrTokenMalformed
	}
}
