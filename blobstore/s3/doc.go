// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("snapshots/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	db, err := jdb.OpenBlob(ctx, store, "kb.jdb")
//
// # Features
//
//   - Range reads, so only the header and the sections are fetched
//   - Optional whole-object download with parallel ranged GETs
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
