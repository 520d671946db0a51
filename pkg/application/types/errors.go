package types

import "fmt"

// conflict codes
const (
	CONFLICT_CODE_DUPLICATE_COLLABORATOR    = "COLLABORATOR_EXISTS"
	CONFLICT_CODE_COLLABORATOR_IS_APPLICANT = "COLLABORATOR_SAME_AS_APPLICANT"
	CONFLICT_CODE_RENEWAL_EXISTS            = "RENEWAL_EXISTS"
)

// ValidationError carries the field level errors of an invalid section
// payload. Maps to HTTP 400 at the API adapter.
type ValidationError struct {
	Section string
	Errors  []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for section %s (%d field errors)", e.Section, len(e.Errors))
}

// ConflictError signals a request that clashes with existing data, with a
// machine readable code.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NotFoundError signals an unresolved application or collaborator id.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

// ForbiddenError signals that the caller's role lacks permission for the
// requested transition.
type ForbiddenError struct {
	Role   string
	Action string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("role %s is not allowed to %s", e.Role, e.Action)
}

// StateError signals a transition that is not valid from the current state,
// including any mutation of a CLOSED application.
type StateError struct {
	State   string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("invalid operation in state %s: %s", e.State, e.Message)
}

// VersionConflictError signals a rejected compare-and-set write after a stale
// read. The caller retries with a fresh read.
type VersionConflictError struct {
	AppID           string
	ExpectedVersion int64
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("application %s was modified since version %d", e.AppID, e.ExpectedVersion)
}

// TransactionFailure signals that the renewal's dual write was rolled back.
type TransactionFailure struct {
	Err error
}

func (e *TransactionFailure) Error() string {
	return fmt.Sprintf("transaction rolled back: %v", e.Err)
}

func (e *TransactionFailure) Unwrap() error { return e.Err }
