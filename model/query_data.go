package model

import (
	"bytes"
	"fmt"
)

// Query is a client query as seen by the cache.
// CanonicalID must be deterministic: structurally equal queries return the same id.
type Query interface {
	CanonicalID() string
}

// QueryPurpose describes why a target was registered.
type QueryPurpose int

const (
	// PurposeListen is a regular listen initiated by the user.
	PurposeListen QueryPurpose = iota
	// PurposeExistenceFilterMismatch re-listens after an existence filter mismatch.
	PurposeExistenceFilterMismatch
	// PurposeLimboResolution resolves documents in limbo.
	PurposeLimboResolution
)

// String returns a string representation of the QueryPurpose.
func (p QueryPurpose) String() string {
	switch p {
	case PurposeListen:
		return "listen"
	case PurposeExistenceFilterMismatch:
		return "existence-filter-mismatch"
	case PurposeLimboResolution:
		return "limbo-resolution"
	default:
		return fmt.Sprintf("QueryPurpose(%d)", int(p))
	}
}

// QueryData is the sync metadata bound to one registered query.
type QueryData struct {
	// Query is the registered query. It identifies the QueryData.
	Query Query
	// TargetID is the target allocated for the query.
	TargetID TargetID
	// Purpose records why the target exists.
	Purpose QueryPurpose
	// SnapshotVersion is the latest version the target is consistent with.
	SnapshotVersion SnapshotVersion
	// ResumeToken is an opaque server token used to resume the stream.
	ResumeToken []byte
}

// NewQueryData creates QueryData for a freshly allocated target.
func NewQueryData(q Query, targetID TargetID, purpose QueryPurpose) QueryData {
	return QueryData{
		Query:           q,
		TargetID:        targetID,
		Purpose:         purpose,
		SnapshotVersion: MinSnapshotVersion,
	}
}

// WithResumeToken returns a copy with an updated snapshot version and resume token.
func (d QueryData) WithResumeToken(version SnapshotVersion, token []byte) QueryData {
	d.SnapshotVersion = version
	d.ResumeToken = bytes.Clone(token)
	return d
}

// Clone returns a copy that shares no memory with d.
func (d QueryData) Clone() QueryData {
	d.ResumeToken = bytes.Clone(d.ResumeToken)
	return d
}

// CanonicalID returns the canonical id of the bound query, or "" when unset.
func (d QueryData) CanonicalID() string {
	if d.Query == nil {
		return ""
	}
	return d.Query.CanonicalID()
}

// Equal reports whether both values describe the same registration.
func (d QueryData) Equal(o QueryData) bool {
	return d.CanonicalID() == o.CanonicalID() &&
		d.TargetID == o.TargetID &&
		d.Purpose == o.Purpose &&
		d.SnapshotVersion == o.SnapshotVersion &&
		bytes.Equal(d.ResumeToken, o.ResumeToken)
}
