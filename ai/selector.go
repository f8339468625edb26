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


package ai

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Factory constructs a provider backend from its configuration.
type Factory func(*Config) (Provider, error)

// Selector holds the process-wide active provider and supports
// administrative switching between registered backends at runtime.
// Reads are lock-free; Use performs an atomic swap, so in-flight
// pipelines keep the provider they started with. The selection is not
// persisted.
type Selector struct {
	mu       sync.Mutex // serializes Use and Register
	current  atomic.Pointer[selection]
	backends map[Mode]backend
	logger   *slog.Logger
}

type selection struct {
	mode     Mode
	provider Provider
}

type backend struct {
	config  *Config
	factory Factory
}

// NewSelector creates a selector with no registered backends.
func NewSelector() *Selector {
	return &Selector{
		backends: make(map[Mode]backend),
		logger:   slog.Default().With("component", "ai-selector"),
	}
}

// Register associates a mode with a configuration and factory.
// Registering an already-known mode replaces its backend for future
// Use calls; the active provider is unaffected.
func (s *Selector) Register(mode Mode, config *Config, factory Factory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.backends[mode] = backend{config: config, factory: factory}
}

// Use constructs the provider for mode and atomically makes it the
// active one. The previous provider is closed after the swap.
func (s *Selector) Use(mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.backends[mode]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	provider, err := b.factory(b.config)
	if err != nil {
		return err
	}

	old := s.current.Swap(&selection{mode: mode, provider: provider})
	s.logger.Info("switched provider backend", "mode", mode)

	if old != nil {
		if err := old.provider.Close(); err != nil {
			s.logger.Error("error closing previous provider", "mode", old.mode, "err", err)
		}
	}
	return nil
}

// Provider returns the active provider, or nil before the first Use.
func (s *Selector) Provider() Provider {
	sel := s.current.Load()
	if sel == nil {
		return nil
	}
	return sel.provider
}

// Mode returns the active mode, or the empty string before the first
// Use.
func (s *Selector) Mode() Mode {
	sel := s.current.Load()
	if sel == nil {
		return ""
	}
	return sel.mode
}

// Close closes the active provider, if any.
func (s *Selector) Close() error {
	old := s.current.Swap(nil)
	if old == nil {
		return nil
	}
	return old.provider.Close()
}

var _ ProviderSource = (*Selector)(nil)
