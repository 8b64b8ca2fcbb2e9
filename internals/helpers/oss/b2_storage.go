// file: internals/helpers/oss/b2_storage.go
package oss

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kurin/blazer/b2"

	"attendku_backend/internals/configs"
)

// ErrNotConfigured: B2_* env belum diisi, backup remote dimatikan.
var ErrNotConfigured = errors.New("backup storage belum dikonfigurasi")

type Uploader interface {
	Upload(ctx context.Context, key string, r io.Reader) (string, error)
}

type B2Storage struct {
	Client *b2.Client
	Bucket *b2.Bucket
}

func InitB2(ctx context.Context, accountID, appKey, bucketName string) (*B2Storage, error) {
	client, err := b2.NewClient(ctx, accountID, appKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create b2 client: %w", err)
	}
	bucket, err := client.Bucket(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}
	return &B2Storage{Client: client, Bucket: bucket}, nil
}

// InitB2FromEnv: B2_ACCOUNT_ID, B2_APP_KEY, B2_BUCKET.
func InitB2FromEnv(ctx context.Context) (*B2Storage, error) {
	id := strings.TrimSpace(configs.GetEnv("B2_ACCOUNT_ID"))
	key := strings.TrimSpace(configs.GetEnv("B2_APP_KEY"))
	bucket := strings.TrimSpace(configs.GetEnv("B2_BUCKET"))
	if id == "" || key == "" || bucket == "" {
		return nil, ErrNotConfigured
	}
	return InitB2(ctx, id, key, bucket)
}

func (s *B2Storage) Upload(ctx context.Context, key string, r io.Reader) (string, error) {
	w := s.Bucket.Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return fmt.Sprintf("%s/file/%s/%s", s.Bucket.BaseURL(), s.Bucket.Name(), key), nil
}

// BackupKey: backups/attendku-YYYYMMDDTHHMMSSZ.json (UTC)
func BackupKey(at time.Time) string {
	return "backups/attendku-" + at.UTC().Format("20060102T150405Z") + ".json"
}

// UploadJSON encodes v (indented, sama dengan file export) lalu upload.
func UploadJSON(ctx context.Context, up Uploader, key string, v any) (url string, size int, err error) {
	if up == nil {
		return "", 0, ErrNotConfigured
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", 0, err
	}
	url, err = up.Upload(ctx, key, bytes.NewReader(data))
	return url, len(data), err
}
