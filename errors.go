package jdb

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompatibleVersion is matched by every *VersionError.
	ErrIncompatibleVersion = errors.New("jdb: incompatible version")

	// ErrInvalid is matched by every *ValidationError.
	ErrInvalid = errors.New("jdb: invalid database")
)

// IOError reports a failure to open, read or close the source.
//
// Short reads unwrap to io.ErrUnexpectedEOF, missing blobs to
// blobstore.ErrNotFound and an exhausted memory budget to
// resource.ErrMemoryLimit.
type IOError struct {
	Op      string
	Section Section
	Offset  int64
	Err     error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("jdb: %s %s at offset %d: %v", e.Op, e.Section, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// VersionKind tells on which side of the compatibility window a version lies.
type VersionKind uint8

const (
	TooOld VersionKind = iota + 1
	TooNew
)

func (k VersionKind) String() string {
	switch k {
	case TooOld:
		return "too old"
	case TooNew:
		return "too new"
	default:
		return fmt.Sprintf("VersionKind(%d)", uint8(k))
	}
}

// VersionError indicates a snapshot outside the compatibility window.
type VersionError struct {
	Version Version
	Kind    VersionKind
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("jdb: version %s is %s (compatible %s..%s)",
		e.Version, e.Kind, OldestCompatible, NewestCompatible)
}

func (e *VersionError) Unwrap() error { return ErrIncompatibleVersion }

// ValidationError reports a value that violates a load-time invariant.
//
// Index is the record index within Section, or -1 for checks that are not
// tied to a single record.
type ValidationError struct {
	Section Section
	Index   int
	Field   string
	Value   any
	Reason  string
}

func (e *ValidationError) Error() string {
	value := e.Value
	if s, ok := value.(string); ok {
		value = fmt.Sprintf("%q", s)
	}
	if e.Index < 0 {
		return fmt.Sprintf("jdb: %s: %s=%v %s", e.Section, e.Field, value, e.Reason)
	}
	return fmt.Sprintf("jdb: %s %d: %s=%v %s", e.Section.record(), e.Index, e.Field, value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

// validOb reports whether id names an object of a universe of obCount obs.
func validOb(id uint64, obCount int) bool {
	return id >= 1 && id <= uint64(obCount)
}

func obRange(obCount int) string {
	return fmt.Sprintf("out of range [1,%d]", obCount)
}
