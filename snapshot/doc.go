// Package snapshot persists clustering results.
//
// A snapshot is a single binary blob:
//
//	magic "KMNS" | version u16 | compression u8 | reserved u8
//	n u64 | k u32 | dim u32 | iterations u32 | goal f64
//	rawSize u64 | storedSize u64 | crc32c u32
//	payload: k*dim float64 centroids, n uint32 assignments (optionally compressed)
//
// All integers are little-endian. The checksum covers the stored payload.
//
// Save and Load move snapshots through any blobstore.BlobStore. Commit and
// Latest maintain a CURRENT pointer naming the most recent snapshot; with
// s3.DDBCommitStore the pointer update is an atomic compare-and-swap.
package snapshot
