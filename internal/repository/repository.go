// Package repository contains data access layer abstractions.
// Implementations live in subpackages (sqlstore) inside this directory.
package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when an insert violates the unique identifier constraint.
	ErrConflict = errors.New("identifier already exists")
)
