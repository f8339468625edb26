// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/cadsentinel/core"
	"github.com/poiesic/cadsentinel/storage"
)

// VersionRepository implements storage.VersionRepository for BadgerDB.
// Documents and versions use content-derived IDs, so hash lookups are
// direct key reads with a stored-hash check for corruption detection.
type VersionRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.VersionRepository = (*VersionRepository)(nil)

// NewVersionRepository creates a new VersionRepository.
func NewVersionRepository(backend *Backend) (*VersionRepository, error) {
	return &VersionRepository{
		backend: backend,
		logger:  slog.Default().With("component", "version-repository"),
	}, nil
}

// Close releases resources. VersionRepository has no resources to release.
func (r *VersionRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *VersionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// ResolveVersion resolves the (document, version) pair for an ingest
// run. See storage.VersionRepository for the contract.
func (r *VersionRepository) ResolveVersion(ctx context.Context, docHash, versionHash, filename string) (*core.Document, *core.DocumentVersion, bool, error) {
	if docHash == "" || versionHash == "" {
		return nil, nil, false, fmt.Errorf("%w: empty content hash", storage.ErrInvalidQuery)
	}

	var (
		doc      *core.Document
		version  *core.DocumentVersion
		reingest bool
	)

	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		now := time.Now().UTC()

		var err error
		doc, err = r.resolveDocument(tx, docHash, now)
		if err != nil {
			return err
		}

		versionID := core.IDFromContent(versionHash)
		version, err = readVersion(tx, makeVersionKey(versionID))
		if err != nil {
			return err
		}

		if version != nil {
			if version.ContentHash != versionHash || version.DocumentId != doc.Id {
				return fmt.Errorf("%w: version %d", storage.ErrIdentityConflict, versionID)
			}

			// Re-ingest of known content: derived children are
			// replaced wholesale by the pipeline, so clear them here.
			if err := deleteDerivedChildren(tx, version.Id); err != nil {
				return err
			}

			if err := r.deactivateOthers(tx, doc.Id, version.Id, now); err != nil {
				return err
			}

			version.Active = true
			version.SourceFilename = filename
			version.UpdatedAt = now
			if err := tx.Set(makeVersionKey(version.Id), storage.MarshalVersion(version)); err != nil {
				return err
			}

			reingest = true
			r.logger.Info("re-ingesting known version", "versionId", version.Id, "documentId", doc.Id)
			return nil
		}

		if err := r.deactivateOthers(tx, doc.Id, 0, now); err != nil {
			return err
		}

		version = &core.DocumentVersion{
			Id:             versionID,
			DocumentId:     doc.Id,
			ContentHash:    versionHash,
			SourceFilename: filename,
			Active:         true,
			InsertedAt:     now,
			UpdatedAt:      now,
		}
		if err := tx.Set(makeVersionKey(version.Id), storage.MarshalVersion(version)); err != nil {
			return err
		}
		indexKey := makeCompositeKey(versionByDocPrefix, doc.Id, version.Id)
		if err := tx.Set(indexKey, storage.MarshalID(version.Id)); err != nil {
			return err
		}

		r.logger.Info("inserted new version", "versionId", version.Id, "documentId", doc.Id)
		return nil
	})
	if err != nil {
		return nil, nil, false, err
	}
	return doc, version, reingest, nil
}

// resolveDocument looks up or creates the document for docHash.
func (r *VersionRepository) resolveDocument(tx *badger.Txn, docHash string, now time.Time) (*core.Document, error) {
	docID := core.IDFromContent(docHash)
	doc, err := readDocument(tx, makeDocumentKey(docID))
	if err != nil {
		return nil, err
	}
	if doc != nil {
		if doc.ContentHash != docHash {
			return nil, fmt.Errorf("%w: document %d", storage.ErrIdentityConflict, docID)
		}
		return doc, nil
	}

	doc = &core.Document{
		Id:          docID,
		ContentHash: docHash,
		InsertedAt:  now,
	}
	if err := tx.Set(makeDocumentKey(docID), storage.MarshalDocument(doc)); err != nil {
		return nil, err
	}
	r.logger.Info("created document", "documentId", docID)
	return doc, nil
}

// deactivateOthers clears the Active flag on every version of the
// document except keep (0 keeps none).
func (r *VersionRepository) deactivateOthers(tx *badger.Txn, documentId, keep core.ID, now time.Time) error {
	versions, err := versionsOfDocument(tx, documentId)
	if err != nil {
		return err
	}
	for _, v := range versions {
		if v.Id == keep || !v.Active {
			continue
		}
		v.Active = false
		v.UpdatedAt = now
		if err := tx.Set(makeVersionKey(v.Id), storage.MarshalVersion(v)); err != nil {
			return err
		}
	}
	return nil
}

// GetDocument retrieves a document by ID.
func (r *VersionRepository) GetDocument(ctx context.Context, id core.ID) (*core.Document, error) {
	var result *core.Document
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readDocument(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	})
	return result, err
}

// GetDocumentByHash retrieves a document by its content hash.
func (r *VersionRepository) GetDocumentByHash(ctx context.Context, hash string) (*core.Document, error) {
	doc, err := r.GetDocument(ctx, core.IDFromContent(hash))
	if err != nil {
		return nil, err
	}
	if doc.ContentHash != hash {
		return nil, fmt.Errorf("%w: document %d", storage.ErrIdentityConflict, doc.Id)
	}
	return doc, nil
}

// GetVersion retrieves a version by ID.
func (r *VersionRepository) GetVersion(ctx context.Context, id core.ID) (*core.DocumentVersion, error) {
	var result *core.DocumentVersion
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readVersion(tx, makeVersionKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	})
	return result, err
}

// GetVersionByHash retrieves a version by its content hash.
func (r *VersionRepository) GetVersionByHash(ctx context.Context, hash string) (*core.DocumentVersion, error) {
	version, err := r.GetVersion(ctx, core.IDFromContent(hash))
	if err != nil {
		return nil, err
	}
	if version.ContentHash != hash {
		return nil, fmt.Errorf("%w: version %d", storage.ErrIdentityConflict, version.Id)
	}
	return version, nil
}

// ActiveVersion retrieves the active version of a document.
func (r *VersionRepository) ActiveVersion(ctx context.Context, documentId core.ID) (*core.DocumentVersion, error) {
	var result *core.DocumentVersion
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		versions, err := versionsOfDocument(tx, documentId)
		if err != nil {
			return err
		}
		for _, v := range versions {
			if v.Active {
				result = v
				return nil
			}
		}
		return storage.ErrNotFound
	})
	return result, err
}

// VersionsOfDocument lists all versions of a document in insertion
// order.
func (r *VersionRepository) VersionsOfDocument(ctx context.Context, documentId core.ID) ([]*core.DocumentVersion, error) {
	var results []*core.DocumentVersion
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		var err error
		results, err = versionsOfDocument(tx, documentId)
		return err
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(results, func(a, b *core.DocumentVersion) int {
		return a.InsertedAt.Compare(b.InsertedAt)
	})
	return results, nil
}

// Helper methods

// readDocument reads a document from the transaction. Missing keys
// return (nil, nil).
func readDocument(tx *badger.Txn, key []byte) (*core.Document, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var doc *core.Document
	err = item.Value(func(val []byte) error {
		var err error
		doc, err = storage.UnmarshalDocument(val)
		return err
	})
	return doc, err
}

// readVersion reads a version from the transaction. Missing keys
// return (nil, nil).
func readVersion(tx *badger.Txn, key []byte) (*core.DocumentVersion, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var version *core.DocumentVersion
	err = item.Value(func(val []byte) error {
		var err error
		version, err = storage.UnmarshalVersion(val)
		return err
	})
	return version, err
}

// versionsOfDocument collects all versions of a document via the
// document index.
func versionsOfDocument(tx *badger.Txn, documentId core.ID) ([]*core.DocumentVersion, error) {
	ids, err := memberIDs(tx, versionByDocPrefix, documentId)
	if err != nil {
		return nil, err
	}

	results := make([]*core.DocumentVersion, 0, len(ids))
	for _, id := range ids {
		version, err := readVersion(tx, makeVersionKey(id))
		if err != nil {
			return nil, err
		}
		if version != nil {
			results = append(results, version)
		}
	}
	return results, nil
}

// memberIDs scans a composite index and returns the member IDs for one
// owner.
func memberIDs(tx *badger.Txn, prefix string, ownerID core.ID) ([]core.ID, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = makePartialCompositeKey(prefix, ownerID)

	iter := tx.NewIterator(opts)
	defer iter.Close()

	var ids []core.ID
	for iter.Rewind(); iter.Valid(); iter.Next() {
		ids = append(ids, memberIDFromCompositeKey(iter.Item().Key()))
	}
	return ids, nil
}

// deleteDerivedChildren removes everything derived from a version:
// dimensions, notes, summary, chunks and file artifacts, plus their
// index entries. The version row itself survives.
func deleteDerivedChildren(tx *badger.Txn, versionId core.ID) error {
	type family struct {
		indexPrefix string
		makeKey     func(core.ID) []byte
	}
	families := []family{
		{dimensionVerPrefix, makeDimensionKey},
		{noteVerPrefix, makeNoteKey},
		{chunkVerPrefix, makeChunkKey},
		{artifactVerPrefix, makeArtifactKey},
	}

	for _, f := range families {
		ids, err := memberIDs(tx, f.indexPrefix, versionId)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if err := tx.Delete(f.makeKey(id)); err != nil {
				return err
			}
			if err := tx.Delete(makeCompositeKey(f.indexPrefix, versionId, id)); err != nil {
				return err
			}
		}
	}

	if err := tx.Delete(makeSummaryKey(versionId)); err != nil {
		return err
	}
	return nil
}
