package badger

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/storage"
)

// EntityRepository implements storage.EntityRepository for BadgerDB.
type EntityRepository struct {
	backend *Backend
	dimSeq  *badger.Sequence
	noteSeq *badger.Sequence
}

var _ storage.EntityRepository = (*EntityRepository)(nil)

// NewEntityRepository creates a new EntityRepository.
func NewEntityRepository(backend *Backend) (*EntityRepository, error) {
	dimSeq, err := backend.GetSequence(dimensionIDSeq)
	if err != nil {
		return nil, err
	}
	noteSeq, err := backend.GetSequence(noteIDSeq)
	if err != nil {
		dimSeq.Release()
		return nil, err
	}
	return &EntityRepository{
		backend: backend,
		dimSeq:  dimSeq,
		noteSeq: noteSeq,
	}, nil
}

// Close releases the ID sequences.
func (r *EntityRepository) Close() error {
	if err := r.dimSeq.Release(); err != nil {
		return err
	}
	return r.noteSeq.Release()
}

// nextID draws the next ID from a sequence, skipping 0 which is
// reserved as the unset value.
func nextID(seq *badger.Sequence) (core.ID, error) {
	for {
		n, err := seq.Next()
		if err != nil {
			return 0, err
		}
		if n != 0 {
			return core.ID(n), nil
		}
	}
}

// AddDimensions assigns IDs and persists the given dimensions.
func (r *EntityRepository) AddDimensions(ctx context.Context, dims ...*core.Dimension) ([]*core.Dimension, error) {
	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, dim := range dims {
			if dim.VersionId == 0 {
				return fmt.Errorf("%w: dimension without version", storage.ErrInvalidQuery)
			}
			if dim.Id == 0 {
				id, err := nextID(r.dimSeq)
				if err != nil {
					return err
				}
				dim.Id = id
			}
			dim.InsertedAt = time.Now().UTC()

			if err := tx.Set(makeDimensionKey(dim.Id), storage.MarshalDimension(dim)); err != nil {
				return err
			}
			indexKey := makeCompositeKey(dimensionVerPrefix, dim.VersionId, dim.Id)
			if err := tx.Set(indexKey, storage.MarshalID(dim.Id)); err != nil {
				return err
			}
		}
		return nil
	})
	return dims, err
}

// AddNotes assigns IDs and persists the given notes.
func (r *EntityRepository) AddNotes(ctx context.Context, notes ...*core.Note) ([]*core.Note, error) {
	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, note := range notes {
			if note.VersionId == 0 {
				return fmt.Errorf("%w: note without version", storage.ErrInvalidQuery)
			}
			if err := core.ValidateNoteType(note.NoteType); err != nil {
				return err
			}
			if note.Id == 0 {
				id, err := nextID(r.noteSeq)
				if err != nil {
					return err
				}
				note.Id = id
			}
			note.InsertedAt = time.Now().UTC()

			if err := tx.Set(makeNoteKey(note.Id), storage.MarshalNote(note)); err != nil {
				return err
			}
			indexKey := makeCompositeKey(noteVerPrefix, note.VersionId, note.Id)
			if err := tx.Set(indexKey, storage.MarshalID(note.Id)); err != nil {
				return err
			}
		}
		return nil
	})
	return notes, err
}

// GetDimension retrieves a dimension by ID.
func (r *EntityRepository) GetDimension(ctx context.Context, id core.ID) (*core.Dimension, error) {
	var result *core.Dimension
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		item, err := tx.Get(makeDimensionKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalDimension(val)
			return err
		})
	})
	return result, err
}

// GetNote retrieves a note by ID.
func (r *EntityRepository) GetNote(ctx context.Context, id core.ID) (*core.Note, error) {
	var result *core.Note
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		item, err := tx.Get(makeNoteKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalNote(val)
			return err
		})
	})
	return result, err
}

// DimensionsForVersion lists all dimensions of a version in entity
// order.
func (r *EntityRepository) DimensionsForVersion(ctx context.Context, versionId core.ID) ([]*core.Dimension, error) {
	var results []*core.Dimension
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		ids, err := memberIDs(tx, dimensionVerPrefix, versionId)
		if err != nil {
			return err
		}
		for _, id := range ids {
			item, err := tx.Get(makeDimensionKey(id))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				dim, err := storage.UnmarshalDimension(val)
				if err != nil {
					return err
				}
				results = append(results, dim)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(results, func(a, b *core.Dimension) int {
		return a.EntityIndex - b.EntityIndex
	})
	return results, nil
}

// NotesForVersion lists all notes of a version in entity order.
func (r *EntityRepository) NotesForVersion(ctx context.Context, versionId core.ID) ([]*core.Note, error) {
	var results []*core.Note
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		ids, err := memberIDs(tx, noteVerPrefix, versionId)
		if err != nil {
			return err
		}
		for _, id := range ids {
			item, err := tx.Get(makeNoteKey(id))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			err = item.Value(func(val []byte) error {
				note, err := storage.UnmarshalNote(val)
				if err != nil {
					return err
				}
				results = append(results, note)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(results, func(a, b *core.Note) int {
		return a.EntityIndex - b.EntityIndex
	})
	return results, nil
}
