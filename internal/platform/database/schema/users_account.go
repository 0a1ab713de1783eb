// Copyright (c) 2026 Leafmark. All rights reserved.

package schema

// UsersAccountTable represents the 'users.account' table
//
// Rows are written by the external identity service; Leafmark reads them for
// existence checks and join projections only.
type UsersAccountTable struct {
	Table       string
	ID          string
	Username    string
	DisplayName string
	AvatarURL   string
	CreatedAt   string
	UpdatedAt   string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:       "users.account",
	ID:          "id",
	Username:    "username",
	DisplayName: "displayname",
	AvatarURL:   "avatarurl",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
