// Package artifact publishes written case files to shared storage.
//
// Store is the interface for moving finished artifacts (record files,
// triangulations, grids, archives) between the run directory and a
// durable backend. Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: a directory tree with atomic puts
//   - MemoryStore: in-memory, for tests and dry runs
//   - s3.Store: Amazon S3 with streaming multipart uploads
//   - minio.Store: MinIO and other S3-compatible backends
//
// # Throttling
//
// Wrap any Store in a ThrottledStore to bound concurrent transfers and
// bandwidth:
//
//	ctrl := resource.NewController(resource.Config{
//	    MaxConcurrentTransfers: 4,
//	    BandwidthBytesPerSec:   64 << 20,
//	})
//	store = artifact.NewThrottledStore(store, ctrl)
//
// PutAll uploads a batch of files with bounded concurrency.
package artifact
