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


// Package storage defines the persistence interfaces for CadSentinel.
//
// The package contains repository interfaces for documents and
// versions, extracted entities, summaries, embedding chunks, and file
// artifacts, along with the sentinel errors every backend reports and
// MUS serialization wrappers for the core record types.
//
// # Repositories
//
//   - VersionRepository: document/version identity, hash lookup, the
//     single-active invariant, and ResolveVersion for the ETL pipeline
//   - EntityRepository: dimensions and notes keyed by version
//   - SummaryRepository: the one-per-version drawing summary
//   - ChunkRepository: embedding chunks plus FindSimilar vector search
//   - FileArtifactRepository: registered files derived from a version
//
// # Transactions
//
// VersionRepository doubles as the TransactionManager. Operations
// called inside a WithTransaction callback join the surrounding
// transaction through the context, so an ingest run either commits all
// of its writes or none of them.
//
// The production implementation lives in storage/badger. Tests use its
// in-memory mode via badger.NewMemoryRepositories.
package storage
