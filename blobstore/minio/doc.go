// Package minio provides a blobstore.BlobStore backed by MinIO or any
// S3-compatible service reachable through minio-go.
//
//	client, _ := minio.New("localhost:9000", &minio.Options{
//	    Creds: credentials.NewStaticV4(accessKey, secretKey, ""),
//	})
//	store := jdbminio.NewStore(client, "snapshots", "kb/")
//	db, err := jdb.OpenBlob(ctx, store, "latest.jdb")
package minio
