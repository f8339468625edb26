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

// Repositories bundles all repository implementations sharing one
// backend.
type Repositories struct {
	Versions  *VersionRepository
	Entities  *EntityRepository
	Summaries *SummaryRepository
	Chunks    *ChunkRepository
	Artifacts *FileArtifactRepository

	backend *Backend
}

// Backend exposes the shared backend, mainly for transaction scoping.
func (r *Repositories) Backend() *Backend {
	return r.backend
}

// Close releases all repositories and the backend.
func (r *Repositories) Close() error {
	r.Entities.Close()
	r.Summaries.Close()
	r.Chunks.Close()
	r.Artifacts.Close()
	r.Versions.Close()
	return r.backend.Close()
}

// NewRepositories opens all repositories over one backend.
func NewRepositories(backend *Backend) (*Repositories, error) {
	versions, err := NewVersionRepository(backend)
	if err != nil {
		return nil, err
	}
	entities, err := NewEntityRepository(backend)
	if err != nil {
		return nil, err
	}
	summaries, err := NewSummaryRepository(backend)
	if err != nil {
		entities.Close()
		return nil, err
	}
	chunks, err := NewChunkRepository(backend)
	if err != nil {
		entities.Close()
		summaries.Close()
		return nil, err
	}
	artifacts, err := NewFileArtifactRepository(backend)
	if err != nil {
		entities.Close()
		summaries.Close()
		chunks.Close()
		return nil, err
	}
	return &Repositories{
		Versions:  versions,
		Entities:  entities,
		Summaries: summaries,
		Chunks:    chunks,
		Artifacts: artifacts,
		backend:   backend,
	}, nil
}

// NewMemoryRepositories creates the full repository set on an
// in-memory backend for testing. Caller must Close when done.
func NewMemoryRepositories() (*Repositories, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	repos, err := NewRepositories(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return repos, nil
}
