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
	"fmt"
	"log/slog"
	"time"

	"github.com/tombee/studyplan/pkg/errors"
)

// DefaultPlaceholder is returned by Read when a document cannot be read.
const DefaultPlaceholder = "# Document unavailable\n\nThe requested document could not be read.\n"

// Config configures a Store.
type Config struct {
	// Sandbox every path is resolved through (required)
	Sandbox *Sandbox

	// Repository holds the documents (default: FileRepository)
	Repository Repository

	// Placeholder is returned by Read on I/O failure (default: DefaultPlaceholder)
	Placeholder string

	// Logger receives audit entries (optional)
	Logger *slog.Logger
}

// Store is the sandboxed document store used for both the knowledge base and
// the generated plan. It keeps no state between calls.
type Store struct {
	sandbox     *Sandbox
	repo        Repository
	placeholder string
	audit       AuditLogger
}

// New creates a Store.
func New(cfg Config) (*Store, error) {
	if cfg.Sandbox == nil {
		return nil, fmt.Errorf("sandbox is required")
	}
	if cfg.Repository == nil {
		cfg.Repository = NewFileRepository()
	}
	if cfg.Placeholder == "" {
		cfg.Placeholder = DefaultPlaceholder
	}
	var audit AuditLogger = NoopAuditLogger{}
	if cfg.Logger != nil {
		audit = NewSlogAuditLogger(cfg.Logger)
	}
	return &Store{
		sandbox:     cfg.Sandbox,
		repo:        cfg.Repository,
		placeholder: cfg.Placeholder,
		audit:       audit,
	}, nil
}

// Sandbox returns the store's sandbox.
func (s *Store) Sandbox() *Sandbox {
	return s.sandbox
}

// Read returns the document at path, or the store's placeholder when it cannot
// be read. Only an access-denied or invalid path is returned as an error.
func (s *Store) Read(ctx context.Context, path string) (string, error) {
	return s.ReadOr(ctx, path, s.placeholder)
}

// ReadOr is Read with a caller-chosen placeholder.
func (s *Store) ReadOr(ctx context.Context, path, placeholder string) (string, error) {
	content, err := s.ReadStrict(ctx, path)
	if err == nil {
		return content, nil
	}

	var ioErr *errors.IOError
	if !errors.As(err, &ioErr) {
		return "", err
	}
	s.record(ctx, AuditEntry{
		Timestamp: time.Now(),
		Operation: "read",
		Path:      path,
		Result:    "fallback",
		Error:     err.Error(),
	}, "fallback")
	return placeholder, nil
}

// ReadStrict returns the document at path. I/O failures are returned as
// *errors.IOError instead of being replaced by a placeholder.
func (s *Store) ReadStrict(ctx context.Context, path string) (string, error) {
	start := time.Now()

	resolved, err := s.resolve(ctx, "read", path, start)
	if err != nil {
		return "", err
	}

	content, err := s.repo.Get(ctx, resolved)
	if err != nil {
		ioErr := &errors.IOError{Op: "read", Path: path, Cause: err}
		s.record(ctx, AuditEntry{
			Timestamp: start,
			Operation: "read",
			Path:      resolved,
			Result:    "error",
			Duration:  time.Since(start),
			Error:     err.Error(),
		}, ioErr.ErrorType())
		return "", ioErr
	}

	s.record(ctx, AuditEntry{
		Timestamp: start,
		Operation: "read",
		Path:      resolved,
		Result:    "success",
		Duration:  time.Since(start),
		Bytes:     int64(len(content)),
	}, "")
	return content, nil
}

// Write replaces the document at path with content.
func (s *Store) Write(ctx context.Context, path, content string) error {
	start := time.Now()

	resolved, err := s.resolve(ctx, "write", path, start)
	if err != nil {
		return err
	}

	if err := s.repo.Put(ctx, resolved, content); err != nil {
		ioErr := &errors.IOError{Op: "write", Path: path, Cause: err}
		s.record(ctx, AuditEntry{
			Timestamp: start,
			Operation: "write",
			Path:      resolved,
			Result:    "error",
			Duration:  time.Since(start),
			Error:     err.Error(),
		}, ioErr.ErrorType())
		return ioErr
	}

	s.record(ctx, AuditEntry{
		Timestamp: start,
		Operation: "write",
		Path:      resolved,
		Result:    "success",
		Duration:  time.Since(start),
		Bytes:     int64(len(content)),
	}, "")
	return nil
}

func (s *Store) resolve(ctx context.Context, op, path string, start time.Time) (string, error) {
	resolved, err := s.sandbox.Resolve(path)
	if err == nil {
		return resolved, nil
	}

	result := "error"
	var denied *errors.AccessDeniedError
	if errors.As(err, &denied) {
		result = "denied"
	}
	s.record(ctx, AuditEntry{
		Timestamp: start,
		Operation: op,
		Path:      path,
		Result:    result,
		Duration:  time.Since(start),
		Error:     err.Error(),
	}, errors.Type(err))
	return "", err
}

func (s *Store) record(ctx context.Context, entry AuditEntry, errType string) {
	s.audit.Log(ctx, entry)
	recordMetrics(entry, errType)
}
