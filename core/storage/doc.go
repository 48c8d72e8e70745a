// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind the Client interface so the sync report
// archive can run against AWS S3, a self-hosted MinIO, or the testify mocks in
// core/storage/mocks.
//
// # Operations
//
//   - BucketExists / MakeBucket: used by EnsureBucket and the check command.
//   - PutObject: uploads a JSON sync report.
//   - GetObject / ListObjects: read archived reports back.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	ok, err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region, false)
package storage
