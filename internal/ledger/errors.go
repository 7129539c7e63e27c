package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ledger core. All outcomes are deterministic
// functions of input; none are transient.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEntryNotFound   = errors.New("journal entry not found")
	ErrDuplicateCode   = errors.New("account code already in use")
	ErrUnbalanced      = errors.New("journal entry debits do not equal credits")
	ErrAccountInUse    = errors.New("account is referenced by journal lines")
	ErrEntryClosed     = errors.New("journal entry belongs to a closed period")
)

// ValidationError describes malformed or missing input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validationf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a referential miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAccountNotFound) || errors.Is(err, ErrEntryNotFound)
}

// IsConflict reports whether err is a state-incompatible operation:
// deleting a used account or mutating a closed entry.
func IsConflict(err error) bool {
	return errors.Is(err, ErrAccountInUse) || errors.Is(err, ErrEntryClosed)
}

// IsValidation reports whether err is caller-fault input rejection,
// including the business-rule violations raised at write time.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrDuplicateCode) ||
		errors.Is(err, ErrUnbalanced)
}
