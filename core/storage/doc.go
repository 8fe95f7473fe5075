// Package storage provides access to the object storage holding tag files.
//
// It wraps the MinIO Go client, which works against AWS S3 as well as self-hosted
// MinIO. Import files are read from the imports/ prefix of the configured bucket and
// exports are written to exports/.
//
// The Client interface only carries the operations the tag feature uses, so tests
// can replace it with core/storage/mocks.
//
//	client, err := storage.NewClient(cfg.Storage)
//	obj, err := client.GetObject(ctx, cfg.Storage.Bucket, "imports/plant.csv", minio.GetObjectOptions{})
package storage
