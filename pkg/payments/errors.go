package payments

import "errors"

var (
	// ErrPropertyNotFound is returned when the property to unlock does not exist.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrAlreadyEntitled is returned when the user already holds the entitlement.
	// Callers should proceed to disclosure instead of retrying payment.
	ErrAlreadyEntitled = errors.New("user is already entitled to this contact")

	// ErrPaymentInProgress is returned when another attempt for the pair is still pending.
	ErrPaymentInProgress = errors.New("a payment for this property is already in progress")

	// ErrLedgerUnavailable is returned when the ledger cannot be read or written.
	ErrLedgerUnavailable = errors.New("payment ledger unavailable")

	// ErrCatalogUnavailable is returned when the catalog lookup fails for reasons other than absence.
	ErrCatalogUnavailable = errors.New("property catalog unavailable")

	// ErrGatewayFailed is returned when the hand-off to the gateway fails. The attempt is marked failed.
	ErrGatewayFailed = errors.New("payment gateway failed")

	// ErrConflictingFinalize is returned when a finalize disagrees with an already terminal attempt.
	ErrConflictingFinalize = errors.New("attempt already finalized with a different outcome")

	// ErrAttemptNotFound is returned for unknown attempts, and for attempts the caller does not own.
	ErrAttemptNotFound = errors.New("payment attempt not found")

	// ErrUnauthenticated is returned when an operation needs a user and none is present.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidOutcome is returned for outcomes other than completed or failed.
	ErrInvalidOutcome = errors.New("invalid payment outcome")
)
