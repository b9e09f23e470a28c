package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goliatone/go-article/internal/logging"
	"github.com/goliatone/go-article/pkg/interfaces"
)

// ErrInvalidFilename is returned for artifact names that would escape the
// sink directory.
var ErrInvalidFilename = errors.New("artifacts: invalid filename")

// DirSink writes artifacts into a directory on disk.
type DirSink struct {
	root   string
	perm   os.FileMode
	logger interfaces.Logger
}

var _ interfaces.ArtifactSink = (*DirSink)(nil)

// DirOption customises a DirSink.
type DirOption func(*DirSink)

// WithFileMode overrides the permissions of written files.
func WithFileMode(perm os.FileMode) DirOption {
	return func(s *DirSink) {
		s.perm = perm
	}
}

// WithLogger sets the logger used for write events.
func WithLogger(logger interfaces.Logger) DirOption {
	return func(s *DirSink) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewDirSink returns a sink rooted at dir. The directory is created on the
// first delivery.
func NewDirSink(dir string, opts ...DirOption) *DirSink {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	sink := &DirSink{
		root:   filepath.Clean(dir),
		perm:   0o644,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(sink)
	}
	return sink
}

// Root returns the directory artifacts are written to.
func (s *DirSink) Root() string {
	return s.root
}

// Path returns the location an artifact with the given name is written to.
func (s *DirSink) Path(name string) string {
	return filepath.Join(s.root, name)
}

// Deliver writes every artifact, replacing existing files atomically.
func (s *DirSink) Deliver(ctx context.Context, artifacts []interfaces.Artifact) error {
	if len(artifacts) == 0 {
		return nil
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("artifacts: ensure dir %s: %w", s.root, err)
	}

	for _, artifact := range artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		name, err := cleanName(artifact.Filename)
		if err != nil {
			return err
		}
		if err := s.write(name, artifact.Data); err != nil {
			return err
		}
		s.logger.Debug("artifacts.written",
			"path", s.Path(name),
			"format", artifact.Format,
			"bytes", len(artifact.Data),
		)
	}
	return nil
}

func (s *DirSink) write(name string, data []byte) error {
	tmp, err := os.CreateTemp(s.root, "."+name+".*")
	if err != nil {
		return fmt.Errorf("artifacts: create %s: %w", name, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("artifacts: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("artifacts: close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, s.perm); err != nil {
		return fmt.Errorf("artifacts: chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		return fmt.Errorf("artifacts: rename %s: %w", name, err)
	}
	return nil
}

func cleanName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed != filepath.Base(trimmed) || trimmed == "." || trimmed == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return trimmed, nil
}

// MemorySink keeps delivered artifacts in memory. It is safe for concurrent use.
type MemorySink struct {
	mu        sync.Mutex
	artifacts []interfaces.Artifact
}

var _ interfaces.ArtifactSink = (*MemorySink)(nil)

// Deliver records a copy of artifacts.
func (s *MemorySink) Deliver(_ context.Context, artifacts []interfaces.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, artifacts...)
	return nil
}

// Artifacts returns everything delivered so far.
func (s *MemorySink) Artifacts() []interfaces.Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]interfaces.Artifact, len(s.artifacts))
	copy(out, s.artifacts)
	return out
}
