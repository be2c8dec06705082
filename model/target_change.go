package model

// TargetChange describes what changed for one target at one point in the stream.
// Added, Modified and Removed are disjoint.
type TargetChange struct {
	Added           DocumentKeySet
	Modified        DocumentKeySet
	Removed         DocumentKeySet
	SnapshotVersion SnapshotVersion
	// ResumeToken is the server's resume point after this change. The cache
	// does not store it; the host carries it into the target's QueryData with
	// QueryData.WithResumeToken and UpdateQueryData.
	ResumeToken []byte
}

// AllKeys returns Added ∪ Modified ∪ Removed.
func (c TargetChange) AllKeys() DocumentKeySet {
	return c.Added.Union(c.Modified).Union(c.Removed)
}

// IsEmpty reports whether the change touches no document.
func (c TargetChange) IsEmpty() bool {
	return c.Added.IsEmpty() && c.Modified.IsEmpty() && c.Removed.IsEmpty()
}
