// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package sec

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// # Password Hashing

var (
	// ErrPasswordMismatch is returned when the plaintext does not match the digest.
	ErrPasswordMismatch = errors.New("sec: password does not match digest")

	// ErrInsecureDigest is returned when the stored credential is not a
	// recognizable bcrypt digest. An early deployment stored some passwords
	// in plaintext; callers must route these accounts to the reset flow
	// instead of ever comparing plaintext values.
	ErrInsecureDigest = errors.New("sec: stored credential is not a secure digest")
)

// bcryptPrefixes are the version tags a bcrypt digest may start with.
var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// Each call salts independently, so hashing the same input twice yields
// two different digests.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyPassword compares a plain-text password with its stored digest.
//
// # Returns
//   - nil when the password matches.
//   - [ErrInsecureDigest] when the stored value lacks a bcrypt prefix tag,
//     so callers can force a password reset.
//   - [ErrPasswordMismatch] for a merely-wrong password or corrupted digest.
func VerifyPassword(plainTextPassword, storedDigest string) error {
	if !IsSecureDigest(storedDigest) {
		return ErrInsecureDigest
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedDigest), []byte(plainTextPassword)); err != nil {
		return ErrPasswordMismatch
	}

	return nil
}

// IsSecureDigest reports whether the stored value carries a bcrypt version tag.
func IsSecureDigest(storedDigest string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(storedDigest, prefix) {
			return true
		}
	}
	return false
}
