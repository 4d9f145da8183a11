// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

/*
GenerateSecureToken creates a cryptographically secure random token.

Used for one-time credentials such as password reset tokens. The returned
string is hex-encoded, so its length is twice the byte count.

Parameters:
  - byteLength: Number of random bytes (32 gives 256 bits of entropy)

Returns:
  - string: Hex-encoded random token
  - error: Entropy source failure
*/
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token.
//
// Reset tokens are stored hashed so a leaked store snapshot cannot be
// replayed against the reset endpoint.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
