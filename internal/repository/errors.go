// Package repository implements MySQL data access for users,
// properties and messages. Sentinel errors defined here let handlers
// translate failures into the right HTTP status without inspecting
// driver error strings themselves.
package repository

import "errors"

// ErrEmailExists is returned when registering with an email that is
// already taken. Handlers translate it into a 400 with the duplicate
// email message.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrPropertyNotFound is returned when a property lookup matches no
// row. Handlers translate it into a 404; the ownership check never
// runs for missing properties so callers cannot probe existence
// through 403s.
var ErrPropertyNotFound = errors.New("property not found")
