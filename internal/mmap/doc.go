// Package mmap provides read-only memory-mapped access to snapshot files.
//
// # Usage
//
//	m, err := mmap.Open("kb.jdb")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (Advise is a no-op)
//
// A Mapping is safe for concurrent reads. Close is idempotent; callers must
// not use slices obtained from Bytes after Close returns.
package mmap
