// Package persist implements the durable client-state snapshot: a single
// named record holding the serialized analysis state, written after every
// mutation and read once at startup.
package persist

import (
	"context"
	"errors"
	"io/fs"

	"github.com/vitalscope/vitalscope/pkg/analysis"
)

// Repository abstracts the snapshot backend. Load returns (nil, nil) when
// no snapshot exists; durable storage is a cache, not the source of truth
// for the running session.
type Repository interface {
	Save(ctx context.Context, state *analysis.State) error
	Load(ctx context.Context) (*analysis.State, error)
}

// FileRepository stores the snapshot as one JSON file on the local
// filesystem. This is the default backend.
type FileRepository struct {
	Path string
}

// NewFileRepository creates a FileRepository writing to the given path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{Path: path}
}

// Save writes the snapshot, creating parent directories as needed.
func (r *FileRepository) Save(ctx context.Context, state *analysis.State) error {
	return analysis.SaveState(r.Path, state)
}

// Load reads the snapshot. A missing file is not an error.
func (r *FileRepository) Load(ctx context.Context) (*analysis.State, error) {
	state, err := analysis.LoadState(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return state, nil
}
