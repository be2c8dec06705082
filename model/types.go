package model

import (
	"cmp"
	"fmt"
	"time"
)

// TargetID identifies a registered target.
// Invariant: Never reused while change-log or reference entries for it exist.
type TargetID uint32

// Transaction is the host persistence layer's transaction handle.
// It is threaded through every cache call and never inspected.
type Transaction any

// SnapshotVersion is a point in the remote change stream.
// The zero value is MinSnapshotVersion.
type SnapshotVersion struct {
	seconds int64
	nanos   int32
}

// MinSnapshotVersion is the version before any change was observed.
// No version orders before it.
var MinSnapshotVersion = SnapshotVersion{}

// NewSnapshotVersion creates a version from seconds and nanoseconds.
// Nanoseconds outside [0, 1e9) are normalized into seconds. Results before
// the Unix epoch are clamped to MinSnapshotVersion.
func NewSnapshotVersion(seconds int64, nanos int32) SnapshotVersion {
	seconds += int64(nanos / 1e9)
	nanos %= 1e9
	if nanos < 0 {
		seconds--
		nanos += 1e9
	}
	if seconds < 0 {
		return MinSnapshotVersion
	}
	return SnapshotVersion{seconds: seconds, nanos: nanos}
}

// SnapshotVersionFromTime converts a wall-clock time into a version.
// Times before the Unix epoch map to MinSnapshotVersion.
func SnapshotVersionFromTime(t time.Time) SnapshotVersion {
	return NewSnapshotVersion(t.Unix(), int32(t.Nanosecond()))
}

// Seconds returns the whole-second part of the version.
func (v SnapshotVersion) Seconds() int64 { return v.seconds }

// Nanos returns the sub-second part of the version.
func (v SnapshotVersion) Nanos() int32 { return v.nanos }

// Time returns the version as a wall-clock time (UTC).
func (v SnapshotVersion) Time() time.Time {
	return time.Unix(v.seconds, int64(v.nanos)).UTC()
}

// Compare returns -1, 0 or +1 depending on whether v is before, equal to or after o.
func (v SnapshotVersion) Compare(o SnapshotVersion) int {
	if c := cmp.Compare(v.seconds, o.seconds); c != 0 {
		return c
	}
	return cmp.Compare(v.nanos, o.nanos)
}

// Before reports whether v is strictly before o.
func (v SnapshotVersion) Before(o SnapshotVersion) bool { return v.Compare(o) < 0 }

// IsMin reports whether v is MinSnapshotVersion.
func (v SnapshotVersion) IsMin() bool { return v == MinSnapshotVersion }

// String returns a string representation of the SnapshotVersion.
func (v SnapshotVersion) String() string {
	return fmt.Sprintf("SnapshotVersion(%d.%09d)", v.seconds, v.nanos)
}

// SnapshotKey orders change-log entries: by TargetID first, Version second.
type SnapshotKey struct {
	TargetID TargetID
	Version  SnapshotVersion
}

// Compare returns -1, 0 or +1 following the composite order.
func (k SnapshotKey) Compare(o SnapshotKey) int {
	if c := cmp.Compare(k.TargetID, o.TargetID); c != 0 {
		return c
	}
	return k.Version.Compare(o.Version)
}

// String returns a string representation of the SnapshotKey.
func (k SnapshotKey) String() string {
	return fmt.Sprintf("Key(%d:%d.%09d)", k.TargetID, k.Version.seconds, k.Version.nanos)
}
