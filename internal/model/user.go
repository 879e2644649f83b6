package model

import "time"

// Roles a user can register with. Owners list properties, seekers
// browse them and message owners. Nothing at the API layer stops a
// seeker from listing a property; the distinction is informational.
const (
	RoleOwner  = "OWNER"
	RoleSeeker = "SEEKER"
)

// ValidRole reports whether s is one of the accepted role names.
func ValidRole(s string) bool {
	return s == RoleOwner || s == RoleSeeker
}

// User mirrors the `users` table. PasswordHash holds the bcrypt hash
// and must never be serialized to clients; handlers build their own
// response shapes from this struct.
//
// Fields:
//  ID           – UUID primary key.
//  Email        – unique, stored lower-cased.
//  Name         – display name.
//  PasswordHash – bcrypt hash of the password.
//  Role         – OWNER or SEEKER.
//  Phone        – optional contact number (nullable).
//  Avatar       – optional avatar URL (nullable).
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Phone        *string
	Avatar       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPart is the public projection of a user embedded in property
// and message responses. It carries no credential material.
type UserPart struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Avatar *string `json:"avatar"`
}
