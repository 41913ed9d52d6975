package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"

	"github.com/vitalscope/vitalscope/pkg/analysis"
)

// GCSRepository stores the snapshot record in Google Cloud Storage.
type GCSRepository struct {
	client *gcs.Client
	bucket string
	key    string
}

// NewGCSRepository creates a GCS-backed Repository.
// It uses Application Default Credentials (works with Workload Identity,
// SA keys, gcloud auth).
func NewGCSRepository(ctx context.Context, bucket, key string) (*GCSRepository, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	if key == "" {
		key = "vitalscope/state.json"
	}
	return &GCSRepository{client: client, bucket: bucket, key: key}, nil
}

// Save writes the snapshot record.
func (r *GCSRepository) Save(ctx context.Context, state *analysis.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	w := r.client.Bucket(r.bucket).Object(r.key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", r.key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", r.key, err)
	}
	return nil
}

// Load reads the snapshot record. A missing object is not an error.
func (r *GCSRepository) Load(ctx context.Context) (*analysis.State, error) {
	rd, err := r.client.Bucket(r.bucket).Object(r.key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("gcs read %s: %w", r.key, err)
	}
	defer rd.Close()

	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", r.key, err)
	}
	var state analysis.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &state, nil
}
