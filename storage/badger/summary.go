package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/storage"
)

// SummaryRepository implements storage.SummaryRepository for BadgerDB.
// Summaries are keyed by version ID, so a re-ingest naturally replaces
// the previous summary.
type SummaryRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.SummaryRepository = (*SummaryRepository)(nil)

// NewSummaryRepository creates a new SummaryRepository.
func NewSummaryRepository(backend *Backend) (*SummaryRepository, error) {
	seq, err := backend.GetSequence(summaryIDSeq)
	if err != nil {
		return nil, err
	}
	return &SummaryRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the ID sequence.
func (r *SummaryRepository) Close() error {
	return r.seq.Release()
}

// PutSummary persists the summary for its version, replacing any
// existing one.
func (r *SummaryRepository) PutSummary(ctx context.Context, summary *core.Summary) (*core.Summary, error) {
	if summary.VersionId == 0 {
		return nil, fmt.Errorf("%w: summary without version", storage.ErrInvalidQuery)
	}

	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		if summary.Id == 0 {
			id, err := nextID(r.seq)
			if err != nil {
				return err
			}
			summary.Id = id
		}
		summary.InsertedAt = time.Now().UTC()

		return tx.Set(makeSummaryKey(summary.VersionId), storage.MarshalSummary(summary))
	})
	return summary, err
}

// SummaryForVersion retrieves the summary of a version.
func (r *SummaryRepository) SummaryForVersion(ctx context.Context, versionId core.ID) (*core.Summary, error) {
	var result *core.Summary
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		item, err := tx.Get(makeSummaryKey(versionId))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			result, err = storage.UnmarshalSummary(val)
			return err
		})
	})
	return result, err
}
