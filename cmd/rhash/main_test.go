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

package main

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

// TestPackageDocs checks that the license header stays separate from the
// package clause, and that every library package has exactly one doc
// comment naming it.
func TestPackageDocs(t *testing.T) {
	root := filepath.Join("..", "..")
	docs := map[string][]string{}
	names := map[string]string{}

	for _, top := range []string{"pkg", "cmd"} {
		err := filepath.WalkDir(filepath.Join(root, top), func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
				return nil
			}
			f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.PackageClauseOnly|parser.ParseComments)
			if err != nil {
				return err
			}
			dir := filepath.Dir(path)
			names[dir] = f.Name.Name
			if f.Doc == nil {
				return nil
			}
			text := f.Doc.Text()
			if strings.Contains(text, "Licensed under the Apache License") {
				t.Errorf("%s: license header is attached to the package clause", path)
			}
			docs[dir] = append(docs[dir], path)
			if want := "Package " + f.Name.Name + " "; !strings.HasPrefix(text, want) {
				t.Errorf("%s: package doc = %q, want prefix %q", path, firstLine(text), want)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("WalkDir(%s) error = %v", top, err)
		}
	}

	for dir, name := range names {
		if name == "main" {
			continue
		}
		if got := len(docs[dir]); got != 1 {
			t.Errorf("package %s (%s) has %d doc comments %v, want 1", name, dir, got, docs[dir])
		}
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
