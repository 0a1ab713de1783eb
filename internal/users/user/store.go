// Copyright (c) 2026 Leafmark. All rights reserved.

package user

import "context"

// Repository is the read-only contract against the identity store.
type Repository interface {
	GetUser(context context.Context, id string) (*User, error)
}
