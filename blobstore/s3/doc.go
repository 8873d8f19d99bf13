// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", "models/")
//	if err != nil { ... }
//	err = snapshot.Save(ctx, store, "run-0001.kmns", res)
//
// # Features
//
//   - Range reads for partial fetches
//   - CRC32C checked single-part puts, multipart uploads for large snapshots
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
//   - DDBCommitStore: DynamoDB conditional writes for the CURRENT pointer
package s3
