// Copyright (c) 2026 Yuedu. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 generates time-ordered identifiers for request IDs and
// object keys.
package uuidv7

import "github.com/google/uuid"

// New returns a UUIDv7 string, sortable by creation time.
//
// If the clock sequence cannot be read a random v4 value is returned, so the
// result is always a valid unique identifier.
func New() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
