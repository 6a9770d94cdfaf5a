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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tombee/studyplan/pkg/errors"
)

// Sandbox resolves paths against a fixed root directory.
type Sandbox struct {
	root      string
	canonical string
}

// NewSandbox creates a sandbox rooted at root. The root does not need to exist yet.
func NewSandbox(root string) (*Sandbox, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("sandbox root is empty")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sandbox root: %w", err)
	}
	canonical, err := evalExisting(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sandbox root: %w", err)
	}
	return &Sandbox{root: abs, canonical: canonical}, nil
}

// Root returns the absolute sandbox root.
func (s *Sandbox) Root() string {
	return s.root
}

// Resolve returns the canonical absolute form of path. Relative paths are
// joined to the root. Symlinks in the existing part of the path are followed
// before the containment check, so a link pointing outside the root is denied.
func (s *Sandbox) Resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", &errors.ValidationError{Field: "path", Message: "path is empty"}
	}

	absPath := path
	if !filepath.IsAbs(absPath) {
		absPath = filepath.Join(s.root, absPath)
	}
	absPath = filepath.Clean(absPath)

	canonical, err := evalExisting(absPath)
	if err != nil {
		return "", &errors.IOError{Op: "resolve", Path: path, Cause: err}
	}

	if !within(canonical, s.canonical) {
		return "", &errors.AccessDeniedError{Path: path, Root: s.root}
	}
	return canonical, nil
}

// maxLinkHops bounds chains of dangling symlinks followed by evalExisting.
const maxLinkHops = 40

// evalExisting evaluates symlinks in the longest existing prefix of path and
// re-appends the missing remainder, so paths that do not exist yet still resolve.
// A dangling symlink resolves to its target, which may lie outside any root.
func evalExisting(path string) (string, error) {
	return evalExistingHops(path, 0)
}

func evalExistingHops(path string, hops int) (string, error) {
	var missing []string
	current := path
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			return appendMissing(resolved, missing), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		if info, lerr := os.Lstat(current); lerr == nil {
			if info.Mode()&os.ModeSymlink == 0 || hops >= maxLinkHops {
				return "", fmt.Errorf("cannot resolve %s: %w", current, err)
			}
			target, err := os.Readlink(current)
			if err != nil {
				return "", err
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(current), target)
			}
			return evalExistingHops(appendMissing(filepath.Clean(target), missing), hops+1)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return path, nil
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}

// appendMissing joins the components collected by evalExistingHops, innermost last.
func appendMissing(base string, missing []string) string {
	for i := len(missing) - 1; i >= 0; i-- {
		base = filepath.Join(base, missing[i])
	}
	return base
}

// within reports whether path equals dir or lies beneath it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
