package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDocumentKey is returned when a path does not name a document.
var ErrInvalidDocumentKey = errors.New("invalid document key")

// DocumentKey identifies a document by its path.
// A document path has an even number of non-empty segments (collection/id pairs).
type DocumentKey struct {
	path string
}

// NewDocumentKey validates path and returns its key.
// Leading and trailing slashes are ignored.
func NewDocumentKey(path string) (DocumentKey, error) {
	path = strings.Trim(path, "/")
	if path == "" {
		return DocumentKey{}, fmt.Errorf("%w: empty path", ErrInvalidDocumentKey)
	}
	segments := strings.Split(path, "/")
	for _, s := range segments {
		if s == "" {
			return DocumentKey{}, fmt.Errorf("%w: empty segment in %q", ErrInvalidDocumentKey, path)
		}
	}
	if len(segments)%2 != 0 {
		return DocumentKey{}, fmt.Errorf("%w: %q has an odd number of segments", ErrInvalidDocumentKey, path)
	}
	return DocumentKey{path: path}, nil
}

// MustDocumentKey is like NewDocumentKey but panics on an invalid path.
// Intended for tests and static keys.
func MustDocumentKey(path string) DocumentKey {
	k, err := NewDocumentKey(path)
	if err != nil {
		panic(err)
	}
	return k
}

// Path returns the document path.
func (k DocumentKey) Path() string { return k.path }

// CollectionPath returns the path of the collection containing the document.
func (k DocumentKey) CollectionPath() string {
	i := strings.LastIndexByte(k.path, '/')
	if i < 0 {
		return ""
	}
	return k.path[:i]
}

// ID returns the last path segment.
func (k DocumentKey) ID() string {
	return k.path[strings.LastIndexByte(k.path, '/')+1:]
}

// Compare orders keys segment by segment.
func (k DocumentKey) Compare(o DocumentKey) int {
	a, b := k.path, o.path
	for {
		sa, restA, moreA := strings.Cut(a, "/")
		sb, restB, moreB := strings.Cut(b, "/")
		if c := strings.Compare(sa, sb); c != 0 {
			return c
		}
		switch {
		case !moreA && !moreB:
			return 0
		case !moreA:
			return -1
		case !moreB:
			return 1
		}
		a, b = restA, restB
	}
}

// String returns the document path.
func (k DocumentKey) String() string { return k.path }
