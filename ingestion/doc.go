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


// Package ingestion implements the drawing ingest ETL.
//
// A Pipeline run resolves document/version identity from content
// hashes, registers file artifacts, extracts Dimension and Note
// entities from the converter's parsed records, generates one summary
// through the AI provider, and embeds a worklist of texts in a single
// batched call. Every derived write happens inside one storage
// transaction; any failure after identity resolution rolls the whole
// run back. Re-ingesting identical content reuses the same rows, so
// the operation is idempotent.
//
// Failures carry the stage they occurred in via StageError, which
// callers unwrap with errors.As.
package ingestion
