// Package sink stores generated artifacts.
package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Sink receives rendered artifacts by file name
type Sink interface {
	WriteArtifact(filename, content string) error
}

// DirSink writes artifacts below a directory
type DirSink struct {
	dir string

	once    sync.Once
	initErr error
}

// NewDirSink creates a sink writing into dir. The directory is created on first write.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

// Dir returns the output directory
func (s *DirSink) Dir() string {
	return s.dir
}

// WriteArtifact writes content to dir/filename, replacing any previous file
func (s *DirSink) WriteArtifact(filename, content string) error {
	if err := validName(filename); err != nil {
		return err
	}

	s.once.Do(func() {
		if err := os.MkdirAll(s.dir, 0755); err != nil {
			s.initErr = fmt.Errorf("failed to create output directory: %w", err)
		}
	})
	if s.initErr != nil {
		return s.initErr
	}

	target := filepath.Join(s.dir, filename)
	if err := os.WriteFile(target, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// Artifact is one file held by a MemorySink
type Artifact struct {
	Filename string
	Content  string
}

// MemorySink keeps artifacts in memory in the order they were written
type MemorySink struct {
	mu        sync.Mutex
	artifacts []Artifact
}

// NewMemorySink creates an empty in-memory sink
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// WriteArtifact appends the artifact
func (s *MemorySink) WriteArtifact(filename, content string) error {
	if err := validName(filename); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, Artifact{Filename: filename, Content: content})
	return nil
}

// Artifacts returns a copy of the written artifacts
func (s *MemorySink) Artifacts() []Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}

// Get returns the content of the last artifact written under filename
func (s *MemorySink) Get(filename string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.artifacts) - 1; i >= 0; i-- {
		if s.artifacts[i].Filename == filename {
			return s.artifacts[i].Content, true
		}
	}
	return "", false
}

// validName rejects names that would escape the output directory
func validName(filename string) error {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return fmt.Errorf("invalid artifact name %q", filename)
	}
	return nil
}
