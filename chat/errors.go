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


package chat

import "errors"

var (
	// ErrEmptyQuestion is returned when a request carries no question text.
	ErrEmptyQuestion = errors.New("question text is required")

	// ErrVersionReferenceRequired is returned when a request names
	// neither a version id nor a document hash.
	ErrVersionReferenceRequired = errors.New("either a version id or a document hash is required")

	// ErrNoProvider is returned when no AI provider is configured.
	ErrNoProvider = errors.New("no AI provider configured")

	ErrVersionRepositoryRequired = errors.New("version repository is required")
	ErrSearcherRequired          = errors.New("searcher is required")
	ErrProviderSourceRequired    = errors.New("provider source is required")
)
