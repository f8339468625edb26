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


package cadsentinel

import (
	"io"
	"log/slog"

	"github.com/poiesic/cadsentinel/ai"
	"github.com/poiesic/cadsentinel/ai/openai"
	"github.com/poiesic/cadsentinel/chat"
	"github.com/poiesic/cadsentinel/ingestion"
	"github.com/poiesic/cadsentinel/reembed"
	"github.com/poiesic/cadsentinel/search"
	"github.com/poiesic/cadsentinel/storage"
	"github.com/poiesic/cadsentinel/storage/badger"
)

// Database bundles the storage repositories with the AI provider
// selector and hands out configured pipeline, search, chat and reembed
// instances that share them.
type Database struct {
	repos    *badger.Repositories
	selector *ai.Selector
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory     bool
	openAIConfig *ai.Config
	localConfig  *ai.Config
	mode         ai.Mode
}

// WithInMemory opens the store fully in memory, with nothing persisted
// to disk. The path argument is ignored. Intended for tests and
// throwaway sessions.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithOpenAIConfig overrides the configuration registered for the
// hosted OpenAI backend.
func WithOpenAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.openAIConfig = config
		}
	}
}

// WithLocalConfig overrides the configuration registered for the local
// OpenAI-compatible backend.
func WithLocalConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.localConfig = config
		}
	}
}

// WithMode selects which registered backend is activated at open.
// Default is ModeOpenAI.
func WithMode(mode ai.Mode) DatabaseOption {
	return func(o *databaseOptions) {
		o.mode = mode
	}
}

// NewDatabase opens the store at filePath and activates the configured
// AI backend. Both the hosted and local backends are registered, so
// UseProvider can switch between them at runtime.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		openAIConfig: ai.OpenAIConfig(),
		localConfig:  ai.LocalConfig(),
		mode:         ai.ModeOpenAI,
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	repos, err := badger.NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	selector := ai.NewSelector()
	selector.Register(ai.ModeOpenAI, options.openAIConfig, openai.NewProvider)
	selector.Register(ai.ModeLocal, options.localConfig, openai.NewProvider)

	if err := selector.Use(options.mode); err != nil {
		repos.Close()
		return nil, err
	}

	return &Database{
		repos:    repos,
		selector: selector,
		logger:   slog.Default(),
	}, nil
}

// Close releases the AI provider and every repository.
func (db *Database) Close() error {
	if err := db.selector.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}
	return db.repos.Close()
}

// UseProvider switches the active AI backend. In-flight operations
// keep the provider they started with.
func (db *Database) UseProvider(mode ai.Mode) error {
	return db.selector.Use(mode)
}

// ProviderMode reports the active AI backend mode.
func (db *Database) ProviderMode() ai.Mode {
	return db.selector.Mode()
}

func (db *Database) VersionRepository() storage.VersionRepository {
	return db.repos.Versions
}

func (db *Database) EntityRepository() storage.EntityRepository {
	return db.repos.Entities
}

func (db *Database) SummaryRepository() storage.SummaryRepository {
	return db.repos.Summaries
}

func (db *Database) ChunkRepository() storage.ChunkRepository {
	return db.repos.Chunks
}

func (db *Database) FileArtifactRepository() storage.FileArtifactRepository {
	return db.repos.Artifacts
}

// NewIngestionPipeline returns a pipeline wired to this database's
// repositories and active provider.
func (db *Database) NewIngestionPipeline() *ingestion.Pipeline {
	return ingestion.NewPipeline(
		db.repos.Versions,
		db.repos.Entities,
		db.repos.Summaries,
		db.repos.Chunks,
		db.repos.Artifacts,
		db.selector,
	)
}

// NewSearcher returns a searcher over this database's chunks.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.repos.Chunks, db.repos.Entities, db.repos.Artifacts, db.selector, opts...)
}

// NewAssembler returns a chat assembler over this database.
func (db *Database) NewAssembler(opts ...chat.Option) (*chat.Assembler, error) {
	searcher, err := db.NewSearcher()
	if err != nil {
		return nil, err
	}
	return chat.NewAssembler(db.repos.Versions, searcher, db.selector, opts...)
}

// NewReembedder returns a reembedder over this database's chunks.
// progress: where to write progress output (typically os.Stderr)
func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) (*reembed.Reembedder, error) {
	return reembed.NewReembedder(db.repos.Chunks, db.selector, config, progress)
}
