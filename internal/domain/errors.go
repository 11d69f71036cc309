package domain

import "github.com/cockroachdb/errors"

// Error kinds. Every concrete error below belongs to exactly one kind, so
// callers can classify with errors.Is(err, ErrNotFound) and still tell
// concrete errors of the same kind apart.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

var (
	ErrUnknownPack = newKindError("unknown pack", ErrNotFound)
	ErrUnknownUser = newKindError("unknown user", ErrNotFound)

	ErrInsufficientFunds    = newKindError("not enough tokens to open this pack", ErrForbidden)
	ErrInsufficientDiamonds = newKindError("not enough diamonds", ErrForbidden)

	ErrInvalidAmount = newKindError("amount must be positive", ErrInvalidInput)

	ErrSerialAllocationFailed = newKindError("serial allocation failed", ErrConflict)
	ErrBalanceChanged         = newKindError("balance changed during transaction", ErrConflict)

	ErrCatalogCorrupted   = newKindError("pack catalog is corrupted", ErrInternal)
	ErrCatalogUnavailable = newKindError("pack catalog unavailable", ErrInternal)
	ErrTransactionTimeout = newKindError("transaction timed out", ErrInternal)
)

type kindError struct {
	msg  string
	kind error
}

func newKindError(msg string, kind error) error {
	return &kindError{msg: msg, kind: kind}
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Is(target error) bool {
	return target == e.kind
}

// Kind returns the taxonomy kind of err, defaulting to ErrInternal.
func Kind(err error) error {
	for _, kind := range []error{ErrInvalidInput, ErrNotFound, ErrForbidden, ErrConflict, ErrInternal} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}
