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


package storage

import (
	"github.com/poiesic/cadsentinel/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalDocument serializes a Document to bytes.
func MarshalDocument(doc *core.Document) []byte {
	buf := make([]byte, core.DocumentMUS.Size(*doc))
	core.DocumentMUS.Marshal(*doc, buf)
	return buf
}

// UnmarshalDocument deserializes a Document from bytes.
func UnmarshalDocument(data []byte) (*core.Document, error) {
	doc, _, err := core.DocumentMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// MarshalVersion serializes a DocumentVersion to bytes.
func MarshalVersion(version *core.DocumentVersion) []byte {
	buf := make([]byte, core.DocumentVersionMUS.Size(*version))
	core.DocumentVersionMUS.Marshal(*version, buf)
	return buf
}

// UnmarshalVersion deserializes a DocumentVersion from bytes.
func UnmarshalVersion(data []byte) (*core.DocumentVersion, error) {
	version, _, err := core.DocumentVersionMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// MarshalDimension serializes a Dimension to bytes.
func MarshalDimension(dim *core.Dimension) []byte {
	buf := make([]byte, core.DimensionMUS.Size(*dim))
	core.DimensionMUS.Marshal(*dim, buf)
	return buf
}

// UnmarshalDimension deserializes a Dimension from bytes.
func UnmarshalDimension(data []byte) (*core.Dimension, error) {
	dim, _, err := core.DimensionMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &dim, nil
}

// MarshalNote serializes a Note to bytes.
func MarshalNote(note *core.Note) []byte {
	buf := make([]byte, core.NoteMUS.Size(*note))
	core.NoteMUS.Marshal(*note, buf)
	return buf
}

// UnmarshalNote deserializes a Note from bytes.
func UnmarshalNote(data []byte) (*core.Note, error) {
	note, _, err := core.NoteMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// MarshalSummary serializes a Summary to bytes.
func MarshalSummary(summary *core.Summary) []byte {
	buf := make([]byte, core.SummaryMUS.Size(*summary))
	core.SummaryMUS.Marshal(*summary, buf)
	return buf
}

// UnmarshalSummary deserializes a Summary from bytes.
func UnmarshalSummary(data []byte) (*core.Summary, error) {
	summary, _, err := core.SummaryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// MarshalChunk serializes an EmbeddingChunk to bytes.
func MarshalChunk(chunk *core.EmbeddingChunk) []byte {
	buf := make([]byte, core.EmbeddingChunkMUS.Size(*chunk))
	core.EmbeddingChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes an EmbeddingChunk from bytes.
func UnmarshalChunk(data []byte) (*core.EmbeddingChunk, error) {
	chunk, _, err := core.EmbeddingChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalArtifact serializes a FileArtifact to bytes.
func MarshalArtifact(artifact *core.FileArtifact) []byte {
	buf := make([]byte, core.FileArtifactMUS.Size(*artifact))
	core.FileArtifactMUS.Marshal(*artifact, buf)
	return buf
}

// UnmarshalArtifact deserializes a FileArtifact from bytes.
func UnmarshalArtifact(data []byte) (*core.FileArtifact, error) {
	artifact, _, err := core.FileArtifactMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}
