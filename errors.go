package querycache

import (
	"errors"
	"fmt"

	"github.com/hupe1980/querycache/model"
)

var (
	// ErrDuplicateRegistration is returned when a query is registered twice.
	ErrDuplicateRegistration = errors.New("query already registered")

	// ErrMissingRegistration is returned when updating or removing a query that is not registered.
	ErrMissingRegistration = errors.New("query not registered")

	// ErrVersionRegression is returned in strict mode when a snapshot version moves backwards.
	ErrVersionRegression = errors.New("snapshot version regression")
)

// RegistrationError describes a rejected target lifecycle operation.
// Both kinds signal a bug in the caller's target tracking. The cache is left unchanged.
//
// The sentinel (ErrDuplicateRegistration or ErrMissingRegistration) can be
// matched with errors.Is.
type RegistrationError struct {
	Op          string
	CanonicalID string
	TargetID    model.TargetID
	cause       error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("%s: %v: target %d (query %q)", e.Op, e.cause, e.TargetID, e.CanonicalID)
}

func (e *RegistrationError) Unwrap() error { return e.cause }

func newRegistrationError(op string, data model.QueryData, cause error) *RegistrationError {
	return &RegistrationError{
		Op:          op,
		CanonicalID: data.CanonicalID(),
		TargetID:    data.TargetID,
		cause:       cause,
	}
}

// VersionError indicates a snapshot version older than one already observed.
//
// The sentinel ErrVersionRegression can be matched with errors.Is.
type VersionError struct {
	Op       string
	TargetID model.TargetID // zero for the global watermark
	Current  model.SnapshotVersion
	Proposed model.SnapshotVersion
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s: %v: %s is before %s", e.Op, ErrVersionRegression, e.Proposed, e.Current)
}

func (e *VersionError) Unwrap() error { return ErrVersionRegression }
