// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExpandOptions controls how command line operands become file paths.
type ExpandOptions struct {
	// Recursive descends into directory operands. Without it directories
	// are rejected.
	Recursive bool
	// FollowSymlinks hashes the targets of symlinked files. Symlinked
	// directories are never descended into.
	FollowSymlinks bool
	// Exclude lists paths to skip. A directory entry excludes everything
	// below it.
	Exclude []string
}

// Expand resolves operands into the list of regular files to hash. File
// operands are kept in order; files found under a directory operand follow
// in lexical order.
func Expand(operands []string, opts ExpandOptions) ([]string, error) {
	var files []string
	for _, op := range operands {
		if shouldExclude(op, opts.Exclude) {
			continue
		}
		info, err := checkFileOrDirectory(op, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, op)
			continue
		}
		if !opts.Recursive {
			return nil, fmt.Errorf("%q is a directory; use recursive mode to hash its files", op)
		}
		found, err := walkDirectory(op, opts)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}

// checkFileOrDirectory accepts regular files and directories. Symlinks are
// rejected unless followSymlinks is set and they resolve to one of those.
func checkFileOrDirectory(path string, followSymlinks bool) (fs.FileInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot hash %q: %w", path, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if !followSymlinks {
			return nil, fmt.Errorf("cannot hash %q because it is a symlink; enable symlink following", path)
		}
		info, err = os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot hash %q; it might be a broken symlink: %w", path, err)
		}
	}
	if !info.Mode().IsRegular() && !info.IsDir() {
		return nil, fmt.Errorf("cannot hash %q; it is not a regular file or directory", path)
	}
	return info, nil
}

func walkDirectory(root string, opts ExpandOptions) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if shouldExclude(path, opts.Exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if !opts.FollowSymlinks {
				return nil
			}
			target, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("failed to resolve symlink %s: %w", path, err)
			}
			if !target.Mode().IsRegular() {
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// shouldExclude reports whether path equals or lies below an exclude entry.
func shouldExclude(path string, exclude []string) bool {
	if len(exclude) == 0 {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, base := range exclude {
		if base == "" {
			continue
		}
		absBase, err := filepath.Abs(base)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(absBase, absPath)
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}
