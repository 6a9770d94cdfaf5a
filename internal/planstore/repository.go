// Copyright 2025 Tom Barlow
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

package planstore

import (
	"context"
	"sync"

	"github.com/tombee/studyplan/pkg/errors"
)

// ErrNotFound is returned by a Repository when no document exists for a key.
var ErrNotFound = errors.New("document not found")

// Repository stores whole documents by key. Keys are sandbox-resolved paths.
// Put overwrites any previous content for the key.
type Repository interface {
	// Get returns the document for key, or an error wrapping ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put stores content under key.
	Put(ctx context.Context, key, content string) error
}

// MemoryRepository is an in-memory Repository.
// It is thread-safe and suitable for testing.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]string
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string]string)}
}

// Get returns the document stored under key.
func (r *MemoryRepository) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[key]
	if !ok {
		return "", errors.Wrap(ErrNotFound, key)
	}
	return doc, nil
}

// Put stores content under key, replacing any previous document.
func (r *MemoryRepository) Put(ctx context.Context, key, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[key] = content
	return nil
}

// Len returns the number of stored documents.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.docs)
}
