package codegen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/c360/lore/errors"
)

// Source is one generated file. Name is relative to the output directory.
type Source struct {
	Name     string
	Contents []byte
}

// SourceSet is the output of one emitter.
type SourceSet struct {
	Sources []Source
}

// Add appends a file to the set.
func (s *SourceSet) Add(name string, contents []byte) {
	s.Sources = append(s.Sources, Source{Name: name, Contents: contents})
}

// Names returns the file names in the set, sorted.
func (s *SourceSet) Names() []string {
	names := make([]string, len(s.Sources))
	for i, src := range s.Sources {
		names[i] = src.Name
	}
	sort.Strings(names)
	return names
}

// Write writes every source below dir, creating parent directories.
func (s *SourceSet) Write(dir string) error {
	for _, src := range s.Sources {
		if err := src.Write(dir); err != nil {
			return err
		}
	}
	return nil
}

// Write writes the source below dir, creating parent directories.
func (s Source) Write(dir string) error {
	path := filepath.Join(dir, s.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapFatal(fmt.Errorf("%w: %w", errors.ErrEmitFailed, err),
			"Source", "Write", fmt.Sprintf("create directory for %s", path))
	}
	if err := os.WriteFile(path, s.Contents, 0o644); err != nil {
		return errors.WrapFatal(fmt.Errorf("%w: %w", errors.ErrEmitFailed, err),
			"Source", "Write", fmt.Sprintf("write %s", path))
	}
	return nil
}
