package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"

	"startask/internal/domain"
)

// ObjectStore is the subset of *minio.Client used for sweep reports.
type ObjectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type Service interface {
	ArchiveSweep(ctx context.Context, result *domain.SweepResult) (string, error)
}

type service struct {
	store  ObjectStore
	bucket string
}

func NewService(store ObjectStore, bucket string) Service {
	return &service{
		store:  store,
		bucket: bucket,
	}
}

// ObjectKey places a run under its UTC start date, e.g.
// sweeps/2026/03/10/<run id>.json.
func ObjectKey(result *domain.SweepResult) string {
	started := result.StartedAt.UTC()
	return fmt.Sprintf("sweeps/%04d/%02d/%02d/%s.json", started.Year(), started.Month(), started.Day(), result.RunID)
}

func (s *service) ArchiveSweep(ctx context.Context, result *domain.SweepResult) (string, error) {
	body, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal sweep report: %w", err)
	}

	key := ObjectKey(result)
	_, err = s.store.PutObject(ctx, s.bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("upload sweep report: %w", err)
	}

	return key, nil
}
