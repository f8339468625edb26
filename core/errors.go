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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrInvalidVersion indicates a DocumentVersion failed validation.
	ErrInvalidVersion = errors.New("invalid document version")

	// ErrInvalidChunk indicates an EmbeddingChunk failed validation.
	ErrInvalidChunk = errors.New("invalid embedding chunk")

	// ErrEmptyContentHash indicates a required content hash is missing.
	ErrEmptyContentHash = errors.New("content hash cannot be empty")

	// ErrEmptyChunkContent indicates the chunk Content field is empty.
	ErrEmptyChunkContent = errors.New("chunk content cannot be empty")

	// ErrInvalidSourceType indicates an unknown SourceType value.
	ErrInvalidSourceType = errors.New("invalid source type")

	// ErrInvalidNoteType indicates an unknown note classification.
	ErrInvalidNoteType = errors.New("invalid note type")

	// ErrVectorWidth indicates a vector does not have the configured
	// embedding dimension.
	ErrVectorWidth = errors.New("vector width mismatch")
)
