// Copyright (c) 2026 TaskHive. All rights reserved.
// Author: vu.tranminh.dev@gmail.com

/*
Package auth implements the user identity layer of the marketplace.

It defines the core domain entity (User) and the logic for registration,
credential verification, and password recovery.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a registered member of the TaskHive marketplace.
//
// A member may act as a client (posting tasks) or a freelancer (placing bids);
// there is no role distinction at the account level.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldToken       = "token"
	FieldAccessToken = "access_token"
	FieldSuccess     = "success"
	FieldUser        = "user"
	FieldMessage     = "message"
)
