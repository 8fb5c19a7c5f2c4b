// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Loader is the external source-loading collaborator from spec §6: it
// loads the text for a path, or reports that the path does not exist
// by returning ok=false with a nil error.
type Loader interface {
	LoadSource(path string) (text string, ok bool, err error)
}

// FileLoader loads sources from a directory tree rooted at Base. It
// refuses to read any path that canonicalizes to a location outside
// Base, even via "..", a symlink, or an absolute path.
type FileLoader struct {
	Base string
}

// LoadSource implements Loader.
func (f FileLoader) LoadSource(path string) (string, bool, error) {
	base, err := filepath.Abs(f.Base)
	if err != nil {
		return "", false, fmt.Errorf("source: resolving base %q: %w", f.Base, err)
	}
	if resolved, err := filepath.EvalSymlinks(base); err == nil {
		base = resolved
	}
	full, err := filepath.Abs(filepath.Join(base, path))
	if err != nil {
		return "", false, fmt.Errorf("source: resolving path %q: %w", path, err)
	}
	if resolved, err := filepath.EvalSymlinks(full); err == nil {
		full = resolved
	}

	rel, err := filepath.Rel(base, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false, fmt.Errorf("source: path %q escapes base %q", path, f.Base)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("source: reading %q: %w", path, err)
	}

	if !utf8.Valid(data) {
		return "", false, fmt.Errorf("source: %q is not valid UTF-8", path)
	}
	return string(data), true, nil
}
