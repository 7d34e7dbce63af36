package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/foxseedlab/jimaku/external/gcp"
	"github.com/foxseedlab/jimaku/internal/storage"
)

type GCSConfig struct {
	ProjectID       string
	CredentialsJSON string
	BucketName      string
}

type GCSUploader struct {
	projectID       string
	credentialsJSON string
	bucketName      string
}

func NewGCSUploader(cfg GCSConfig) storage.Uploader {
	return &GCSUploader{
		projectID:       cfg.ProjectID,
		credentialsJSON: cfg.CredentialsJSON,
		bucketName:      strings.TrimSpace(cfg.BucketName),
	}
}

func (u *GCSUploader) Upload(ctx context.Context, localPath, objectName string) (string, error) {
	if objectName == "" {
		objectName = filepath.Base(localPath)
	}
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open upload source: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	opts, err := gcp.ClientOptions(u.projectID, u.credentialsJSON)
	if err != nil {
		return "", err
	}
	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("create storage client: %w", err)
	}
	defer func() {
		_ = client.Close()
	}()

	w := client.Bucket(u.bucketName).Object(objectName).NewWriter(ctx)
	w.ContentType = contentTypeFor(localPath)
	n, err := io.Copy(w, f)
	if err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write object %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize object %s: %w", objectName, err)
	}

	uri := ObjectURI(u.bucketName, objectName)
	slog.Info("file uploaded to cloud storage", "path", localPath, "uri", uri, "bytes", n)
	return uri, nil
}

func ObjectURI(bucket, object string) string {
	return fmt.Sprintf("gs://%s/%s", bucket, strings.TrimPrefix(object, "/"))
}

func contentTypeFor(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
