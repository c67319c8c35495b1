// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// read paths the archive layer needs: byte-range reads of archive objects
// from an S3- or MinIO-hosted CDN mirror, existence checks, and listing.
// This abstraction supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it
// easier to mock storage interactions for unit testing (as seen in
// core/storage/mocks).
//
// # Operations
//
//   - BucketExists: Verifies access to the mirror bucket.
//   - GetObject: Retrieves object content as a stream; range reads are
//     requested through minio.GetObjectOptions.
//   - StatObject: Checks that an archive object exists without reading it.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "gamedata")
package storage
