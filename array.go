package jdb

import (
	"context"
	"fmt"
	"io"

	"github.com/hupe1980/jdb/blobstore"
	"github.com/hupe1980/jdb/internal/format"
	"github.com/hupe1980/jdb/resource"
)

// source is the read side of a single load.
type source struct {
	ctx  context.Context
	blob blobstore.Blob
	rc   *resource.Controller

	read     int64 // bytes read from blob
	reserved int64 // bytes reserved against rc
}

func (s *source) size() int64 {
	if s.blob == nil {
		return 0
	}
	return s.blob.Size()
}

// readAt fills p from off. n < len(p) always comes with a non-nil error.
func (s *source) readAt(p []byte, off int64) (int, error) {
	if err := s.rc.AcquireIO(s.ctx, len(p)); err != nil {
		return 0, err
	}
	n, err := s.blob.ReadAt(s.ctx, p, off)
	s.read += int64(n)
	if n == len(p) {
		return n, nil
	}
	if err == nil {
		err = io.EOF
	}
	return n, err
}

// reserve accounts nbytes against the controller, if there is one.
func (s *source) reserve(nbytes int64) bool {
	if s.rc == nil {
		return true
	}
	if !s.rc.TryAcquireMemory(nbytes) {
		return false
	}
	s.reserved += nbytes
	return true
}

// loadArray reads count records of size bytes each from the given block.
func loadArray[T any](s *source, section Section, block, count uint32, size int, decode func([]byte) T) ([]T, error) {
	return loadArrayAt(s, section, format.BlockOffset(block), count, size, decode)
}

// loadArrayAt reads count records of size bytes each starting at byte offset
// off into a new slice of exactly count elements.
func loadArrayAt[T any](s *source, section Section, off int64, count uint32, size int, decode func([]byte) T) ([]T, error) {
	if count == 0 {
		return []T{}, nil
	}

	nbytes := int64(count) * int64(size)
	if avail := s.size() - off; avail < nbytes {
		return nil, shortRead(section, off, max(avail, 0)/int64(size), count)
	}
	if !s.reserve(nbytes) {
		return nil, &IOError{Op: "reserve", Section: section, Offset: off, Err: resource.ErrMemoryLimit}
	}

	buf := make([]byte, nbytes)
	n, err := s.readAt(buf, off)
	if err == io.EOF {
		return nil, shortRead(section, off, int64(n)/int64(size), count)
	}
	if err != nil {
		return nil, &IOError{Op: "read", Section: section, Offset: off, Err: err}
	}

	out := make([]T, count)
	for i := range out {
		out[i] = decode(buf[i*size : (i+1)*size])
	}
	return out, nil
}

func shortRead(section Section, off, have int64, want uint32) error {
	return &IOError{
		Op:      "read",
		Section: section,
		Offset:  off,
		Err:     fmt.Errorf("read %d of %d records: %w", have, want, io.ErrUnexpectedEOF),
	}
}
