package models

import "github.com/cockroachdb/errors"

// ErrNotFound is returned when the upstream API has no such match, tournament
// or player.
var ErrNotFound = errors.New("not found")
