// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible services (Ceph, Garage,
// SeaweedFS) without pulling in the AWS SDK.
//
// # Basic Usage
//
//	store, err := minio.New("localhost:9000", "minioadmin", "minioadmin", "models", "runs/", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = snapshot.Save(ctx, store, "run-0001.kmns", res)
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
