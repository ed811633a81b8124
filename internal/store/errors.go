package store

import "errors"

// ValidationError reports a missing required reference: a nil item, an
// owner id that does not resolve to a user, or a missing parent row.
// Absence of the primary target of an operation is not a validation
// error; it is signaled with nil/false return values instead.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// OwnershipError reports an update that tries to change an immutable
// relationship: the owning user, or the parent trad/post.
type OwnershipError struct {
	Msg string
}

func (e *OwnershipError) Error() string { return e.Msg }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsOwnership reports whether err is (or wraps) an OwnershipError.
func IsOwnership(err error) bool {
	var o *OwnershipError
	return errors.As(err, &o)
}
