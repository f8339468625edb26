package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/storage"
)

// Thumbnail file type registered by the rendering converter.
const thumbnailFileType = "png_thumb"

// FileArtifactRepository implements storage.FileArtifactRepository for
// BadgerDB.
type FileArtifactRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.FileArtifactRepository = (*FileArtifactRepository)(nil)

// NewFileArtifactRepository creates a new FileArtifactRepository.
func NewFileArtifactRepository(backend *Backend) (*FileArtifactRepository, error) {
	seq, err := backend.GetSequence(artifactIDSeq)
	if err != nil {
		return nil, err
	}
	return &FileArtifactRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the ID sequence.
func (r *FileArtifactRepository) Close() error {
	return r.seq.Release()
}

// AddArtifact assigns an ID and persists the artifact.
func (r *FileArtifactRepository) AddArtifact(ctx context.Context, artifact *core.FileArtifact) (*core.FileArtifact, error) {
	if artifact.VersionId == 0 {
		return nil, fmt.Errorf("%w: artifact without version", storage.ErrInvalidQuery)
	}
	if artifact.Path == "" {
		return nil, fmt.Errorf("%w: artifact without path", storage.ErrInvalidQuery)
	}

	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		if artifact.Id == 0 {
			id, err := nextID(r.seq)
			if err != nil {
				return err
			}
			artifact.Id = id
		}
		artifact.InsertedAt = time.Now().UTC()

		if err := tx.Set(makeArtifactKey(artifact.Id), storage.MarshalArtifact(artifact)); err != nil {
			return err
		}
		indexKey := makeCompositeKey(artifactVerPrefix, artifact.VersionId, artifact.Id)
		return tx.Set(indexKey, storage.MarshalID(artifact.Id))
	})
	return artifact, err
}

// ArtifactsForVersion lists all artifacts of a version.
func (r *FileArtifactRepository) ArtifactsForVersion(ctx context.Context, versionId core.ID) ([]*core.FileArtifact, error) {
	var results []*core.FileArtifact
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		ids, err := memberIDs(tx, artifactVerPrefix, versionId)
		if err != nil {
			return err
		}
		for _, id := range ids {
			item, err := tx.Get(makeArtifactKey(id))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				artifact, err := storage.UnmarshalArtifact(val)
				if err != nil {
					return err
				}
				results = append(results, artifact)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return results, err
}

// ThumbnailForVersion retrieves the thumbnail artifact of a version.
func (r *FileArtifactRepository) ThumbnailForVersion(ctx context.Context, versionId core.ID) (*core.FileArtifact, error) {
	artifacts, err := r.ArtifactsForVersion(ctx, versionId)
	if err != nil {
		return nil, err
	}
	for _, a := range artifacts {
		if a.FileType == thumbnailFileType {
			return a, nil
		}
	}
	return nil, storage.ErrNotFound
}
