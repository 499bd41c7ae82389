package imagehost

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCS writes images to a public bucket.
type GCS struct {
	client *storage.Client
	bucket string
}

func NewGCS(client *storage.Client, bucket string) *GCS {
	return &GCS{client: client, bucket: bucket}
}

func (g *GCS) Upload(ctx context.Context, f File) (string, error) {
	w := g.client.Bucket(g.bucket).Object(f.Name).NewWriter(ctx)
	w.ContentType = f.ContentType
	w.CacheControl = "public, max-age=31536000, immutable"
	if _, err := io.Copy(w, f.Body); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs write %s: %w", f.Name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs close %s: %w", f.Name, err)
	}
	return PublicURL(g.bucket, f.Name), nil
}

func PublicURL(bucket, object string) string {
	return "https://storage.googleapis.com/" + bucket + "/" + object
}
