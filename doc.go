// Package jdb loads jdb snapshots: compact binary descriptions of a
// combinatory-logic knowledge base.
//
// A snapshot holds a fixed universe of objects ("obs"), ternary equations
// over them under three operators (application, composition and join), a
// probabilistic grammar over the obs and a table of named obs.
//
// # Quick Start
//
// Local file (memory-mapped):
//
//	ctx := context.Background()
//	db, err := jdb.Open(ctx, "skj.jdb")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(db.ObCount(), db.AtomProb(), db.Lookup("S"))
//
// Remote blob, optionally compressed:
//
//	store, _ := s3.New(ctx, "kb-snapshots", s3.WithPrefix("skj/"))
//	db, err := jdb.OpenBlob(ctx, blobstore.NewDecompressingStore(store, 0), "latest.jdb.zst")
//
// # Loading
//
// A load is one sequential pass: header, version check, section bounds,
// application, composition and join equations, grammar, names. Every record
// is validated as it is read and the first violation aborts the load. There
// is no partially loaded Database.
//
// Errors are typed:
//
//	var verr *jdb.ValidationError
//	switch {
//	case errors.Is(err, jdb.ErrIncompatibleVersion):
//	case errors.As(err, &verr):
//	    log.Printf("%s record %d: %s", verr.Section, verr.Index, verr.Reason)
//	case errors.Is(err, io.ErrUnexpectedEOF):
//	}
//
// # Resource Limits
//
// A resource.Controller bounds the memory owned by loaded databases and the
// read throughput from their sources:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	db, err := jdb.Open(ctx, path, jdb.WithResourceController(rc))
//	...
//	db.Release()
//
// # Concurrency
//
// A Database is immutable once returned and safe for concurrent readers.
package jdb
