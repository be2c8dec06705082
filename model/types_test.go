package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotVersion_Compare(t *testing.T) {
	v1 := NewSnapshotVersion(10, 0)
	v2 := NewSnapshotVersion(10, 5)
	v3 := NewSnapshotVersion(11, 0)

	assert.Equal(t, -1, v1.Compare(v2))
	assert.Equal(t, -1, v2.Compare(v3))
	assert.Equal(t, 1, v3.Compare(v1))
	assert.Equal(t, 0, v2.Compare(NewSnapshotVersion(10, 5)))
	assert.True(t, MinSnapshotVersion.Before(v1))
	assert.True(t, MinSnapshotVersion.IsMin())
	assert.False(t, v1.IsMin())
}

func TestSnapshotVersion_Normalize(t *testing.T) {
	v := NewSnapshotVersion(1, 1_500_000_000)
	assert.Equal(t, int64(2), v.Seconds())
	assert.Equal(t, int32(500_000_000), v.Nanos())

	v = NewSnapshotVersion(1, -1)
	assert.Equal(t, int64(0), v.Seconds())
	assert.Equal(t, int32(999_999_999), v.Nanos())
}

func TestSnapshotVersion_ClampsToMin(t *testing.T) {
	assert.Equal(t, MinSnapshotVersion, NewSnapshotVersion(-5, 0))
	assert.Equal(t, MinSnapshotVersion, NewSnapshotVersion(0, -1))
	assert.Equal(t, MinSnapshotVersion, SnapshotVersionFromTime(time.Date(1969, 12, 31, 23, 0, 0, 0, time.UTC)))

	for _, v := range []SnapshotVersion{
		NewSnapshotVersion(-1, 999_999_999),
		NewSnapshotVersion(0, 0),
		NewSnapshotVersion(0, 1),
		SnapshotVersionFromTime(time.Unix(-100, 0)),
	} {
		assert.False(t, v.Before(MinSnapshotVersion), v.String())
	}
}

func TestSnapshotVersion_Time(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 42, time.UTC)
	v := SnapshotVersionFromTime(ts)
	assert.True(t, ts.Equal(v.Time()))
}

func TestSnapshotKey_Compare(t *testing.T) {
	a := SnapshotKey{TargetID: 1, Version: NewSnapshotVersion(100, 0)}
	b := SnapshotKey{TargetID: 2, Version: NewSnapshotVersion(1, 0)}
	c := SnapshotKey{TargetID: 2, Version: NewSnapshotVersion(5, 0)}

	assert.Equal(t, -1, a.Compare(b), "target id dominates the version")
	assert.Equal(t, -1, b.Compare(c))
	assert.Equal(t, 0, c.Compare(c))
}

func TestDocumentKey(t *testing.T) {
	k, err := NewDocumentKey("/rooms/eros/messages/1/")
	require.NoError(t, err)
	assert.Equal(t, "rooms/eros/messages/1", k.Path())
	assert.Equal(t, "rooms/eros/messages", k.CollectionPath())
	assert.Equal(t, "1", k.ID())

	for _, p := range []string{"", "rooms", "rooms//x", "a/b/c"} {
		_, err := NewDocumentKey(p)
		assert.True(t, errors.Is(err, ErrInvalidDocumentKey), p)
	}

	assert.Panics(t, func() { MustDocumentKey("rooms") })
}

func TestDocumentKey_CompareBySegment(t *testing.T) {
	// Plain string order would put "a-b/1" before "a/b/c/d".
	a := MustDocumentKey("a/b/c/d")
	b := MustDocumentKey("a-b/1")
	assert.Equal(t, -1, a.Compare(b))

	assert.Equal(t, -1, MustDocumentKey("a/1").Compare(MustDocumentKey("a/1/b/2")))
	assert.Equal(t, 1, MustDocumentKey("a/2").Compare(MustDocumentKey("a/1/b/2")))
	assert.Equal(t, 0, MustDocumentKey("a/1").Compare(MustDocumentKey("a/1")))
}

type testQuery string

func (q testQuery) CanonicalID() string { return string(q) }

func TestQueryData(t *testing.T) {
	d := NewQueryData(testQuery("rooms"), 7, PurposeListen)
	assert.True(t, d.SnapshotVersion.IsMin())
	assert.Equal(t, "rooms", d.CanonicalID())

	token := []byte("token")
	d2 := d.WithResumeToken(NewSnapshotVersion(3, 0), token)
	token[0] = 'X'
	assert.Equal(t, []byte("token"), d2.ResumeToken)
	assert.False(t, d.Equal(d2))
	assert.True(t, d2.Equal(d2.WithResumeToken(d2.SnapshotVersion, d2.ResumeToken)))

	assert.Equal(t, "", QueryData{}.CanonicalID())
	assert.Equal(t, "limbo-resolution", PurposeLimboResolution.String())
}

func TestQueryData_Clone(t *testing.T) {
	d := NewQueryData(testQuery("rooms"), 1, PurposeListen)
	d.ResumeToken = []byte("abc")

	c := d.Clone()
	require.True(t, d.Equal(c))
	c.ResumeToken[0] = 'X'
	assert.Equal(t, []byte("abc"), d.ResumeToken)

	assert.Nil(t, NewQueryData(testQuery("rooms"), 1, PurposeListen).Clone().ResumeToken)
}
