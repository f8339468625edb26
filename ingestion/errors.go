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


package ingestion

import (
	"errors"
	"fmt"
)

var (
	// ErrEmbeddingCountMismatch indicates the embedding backend
	// returned a different number of vectors than texts requested. The
	// run is aborted rather than persisting a partial chunk set.
	ErrEmbeddingCountMismatch = errors.New("embedding count mismatch")

	// ErrNoProvider indicates no AI provider is active.
	ErrNoProvider = errors.New("no active AI provider")
)

// Pipeline stages, reported on failure.
const (
	StageResolve   = "resolve"
	StageArtifacts = "artifacts"
	StageExtract   = "extract"
	StageSummary   = "summary"
	StageEmbed     = "embed"
	StageCommit    = "commit"
)

// StageError wraps a pipeline failure with the stage it occurred in.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("ingestion stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
