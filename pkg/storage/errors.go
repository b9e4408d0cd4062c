package storage

import "errors"

// ErrAttemptNotFound is returned when a payment attempt does not exist.
var ErrAttemptNotFound = errors.New("payment attempt not found")

// ErrPropertyNotFound is returned when a property does not exist in the catalog.
var ErrPropertyNotFound = errors.New("property not found")

// ErrSessionNotFound is returned for unknown or revoked admin sessions.
var ErrSessionNotFound = errors.New("admin session not found")

// ErrPairClaimed is returned when a (user, property) pair is already held by a completed
// attempt or by a pending attempt that has not been abandoned yet.
var ErrPairClaimed = errors.New("user and property pair already has an open or completed attempt")

// ErrEntitlementExists is returned when completing an attempt would create a second
// completed attempt for the same pair.
var ErrEntitlementExists = errors.New("entitlement already exists for user and property")

// ErrAttemptNotPending is returned when a conditional transition finds the attempt
// already in a terminal state.
var ErrAttemptNotPending = errors.New("payment attempt is not pending")
