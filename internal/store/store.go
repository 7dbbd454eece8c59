// Package store persists the record lists as whole YAML files: read
// fully at startup, rewritten fully after every mutation. The running
// process owns the file; no locking, no concurrent writers.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// TimeFileName holds recorded intervals for the time tool.
	TimeFileName = "tasks.yaml"

	// ProgressFileName holds the progress task list.
	ProgressFileName = "progress-data.yaml"
)

// ErrCorruptFile marks a file that exists but cannot be parsed. The
// caller carries on with an empty list and a warning; the next save
// rewrites the file.
var ErrCorruptFile = errors.New("data file is not valid YAML")

// File is a YAML-backed record file.
type File struct {
	Path string
}

// TimeFile returns the interval store under dir.
func TimeFile(dir string) File {
	return File{Path: filepath.Join(dir, TimeFileName)}
}

// ProgressFile returns the progress store under dir.
func ProgressFile(dir string) File {
	return File{Path: filepath.Join(dir, ProgressFileName)}
}

// Load reads the whole file into out, which must be a pointer to a
// slice. Fails soft: a missing file leaves out empty and returns nil;
// an unparseable file leaves out empty and returns ErrCorruptFile so
// the caller can warn without aborting.
func (f File) Load(out any) error {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", f.Path, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptFile, f.Path, err)
	}
	return nil
}

// Save rewrites the file with a block-style serialization of v,
// preserving record order. The write goes to a temporary file in the
// same directory and is renamed over the target, so the file is never
// observed half-written.
func (f File) Save(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.Path, err)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, f.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", f.Path, err)
	}
	return nil
}
