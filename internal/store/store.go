// Package store is the data-access layer. Each exported method translates
// one domain operation into one parameterized query (or, for the stored
// routines, one routine call) and returns fully materialized values — a
// scalar, a struct, or a slice — never a live cursor. The route layer has no
// dependency on database/sql row types.
//
// Expected conditions (no row found, duplicate email) come back as typed
// sentinel errors the caller branches on; anything else is a real store
// failure and propagates as-is.
//
// Multi-statement business operations (training creation with its attendance
// fan-out, lineup replacement, match deletion) run inside a single
// transaction and roll back on any failure.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned by single-row lookups when no row matches.
var ErrNotFound = errors.New("store: not found")

// ErrEmailTaken is returned by CreateUser when the email is already
// registered.
var ErrEmailTaken = errors.New("store: email already registered")

// Store wraps the GORM handle. All data-access methods hang off it so
// handlers receive one dependency instead of a bag of query functions.
type Store struct {
	db *gorm.DB
}

// New returns a Store backed by the given database handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that need to compose their
// own transaction around several store calls.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// one maps GORM's record-not-found to ErrNotFound for single-row reads.
func one(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// playerNameExpr builds the display name the same way the club's reporting
// does: first name, optional surname prefix, surname.
const playerNameExpr = "TRIM(p.first_name || ' ' || CASE WHEN p.sur_name_prefix <> '' THEN p.sur_name_prefix || ' ' ELSE '' END || p.sur_name)"
