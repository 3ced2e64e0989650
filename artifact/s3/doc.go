// Package s3 provides an Amazon S3 implementation of the
// artifact.Store interface.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(s3.NewFromConfig(cfg), "my-bucket", "runs/")
//
// # Features
//
//   - Streaming multipart uploads for large record files
//   - CRC32C integrity validation on every put
//   - Automatic pagination for listing
//   - Configurable prefix for per-project isolation
//
// CommitStore adds DynamoDB-backed atomic commits for manifest
// CURRENT pointers, so several writers can publish into one prefix
// without losing updates.
package s3
