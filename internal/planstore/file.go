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
	"os"
	"path/filepath"

	"github.com/tombee/studyplan/pkg/errors"
)

// FileRepository stores each document as a file at its key.
// Writes go to a temporary file in the same directory and are renamed into
// place, so readers never see a partially written document.
type FileRepository struct {
	dirMode  os.FileMode
	fileMode os.FileMode
}

// NewFileRepository creates a file-backed repository.
func NewFileRepository() *FileRepository {
	return &FileRepository{dirMode: 0o755, fileMode: 0o644}
}

// Get reads the file at key.
func (r *FileRepository) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(key)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return "", err
	}
	return string(data), nil
}

// Put atomically replaces the file at key with content.
func (r *FileRepository) Put(ctx context.Context, key, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(key)
	if err := os.MkdirAll(dir, r.dirMode); err != nil {
		return errors.Wrap(err, "creating parent directory")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(key)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "creating temporary file")
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		cleanup()
		return errors.Wrap(err, "writing temporary file")
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Wrap(err, "closing temporary file")
	}
	if err := os.Chmod(tmpName, r.fileMode); err != nil {
		cleanup()
		return errors.Wrap(err, "setting file mode")
	}
	if err := os.Rename(tmpName, key); err != nil {
		cleanup()
		return errors.Wrap(err, "replacing document")
	}
	return nil
}
