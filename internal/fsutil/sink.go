package fsutil

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Sink receives generated files.
type Sink interface {
	WriteFile(path string, data []byte) error
}

// DirSink writes files to disk, creating parent directories. A file whose
// content is already identical is left untouched so its modification time
// does not change.
type DirSink struct {
	mu      sync.Mutex
	written int
	skipped int
}

// WriteFile implements Sink.
func (s *DirSink) WriteFile(path string, data []byte) error {
	if cur, err := os.ReadFile(path); err == nil && bytes.Equal(cur, data) {
		s.count(false)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	s.count(true)
	return nil
}

func (s *DirSink) count(written bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if written {
		s.written++
	} else {
		s.skipped++
	}
}

// Stats returns how many files were written and how many were already up
// to date.
func (s *DirSink) Stats() (written, skipped int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.written, s.skipped
}

// MemSink keeps files in memory. It is safe for concurrent use.
type MemSink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// WriteFile implements Sink.
func (s *MemSink) WriteFile(path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files == nil {
		s.files = make(map[string][]byte)
	}
	s.files[path] = bytes.Clone(data)
	return nil
}

// File returns the content written to path.
func (s *MemSink) File(path string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[path]
	return string(b), ok
}

// Paths returns every written path, sorted.
func (s *MemSink) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.files))
	for p := range s.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
