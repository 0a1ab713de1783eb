// Copyright (c) 2026 Leafmark. All rights reserved.

// Package user exposes the read-only identity collaborator.
//
// Accounts are created and mutated by the external identity service; Leafmark
// only needs existence checks and minimal projections for review joins.
package user

import "time"

// User is a reader account as seen by the review platform.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   *string   `json:"avatar_url"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

// Projection is the minimal subset of a User embedded in review responses.
type Projection struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// Project reduces a full User to its review-facing projection.
func (u *User) Project() Projection {
	return Projection{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
	}
}
