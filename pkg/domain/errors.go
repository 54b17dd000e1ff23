package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrEntryNotFound is returned when an outline entry ID does not exist.
var ErrEntryNotFound = errors.New("entry not found")

// ErrDuplicateID is returned by document validation when two items share an id.
var ErrDuplicateID = errors.New("duplicate item id")

// ErrUnknownParent is returned when a flat entry references a parent that
// did not appear earlier in the list.
var ErrUnknownParent = errors.New("unknown parent id")

// ErrEmptyID is returned by document validation when an item has no id.
var ErrEmptyID = errors.New("item without id")
