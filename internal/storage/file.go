package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileStore implements Store on the local file system.
type fileStore struct {
	baseDir string
	logger  zerolog.Logger
}

// NewFileStore creates a file-based store. Relative names are resolved
// under baseDir; absolute names are used as-is.
func NewFileStore(baseDir string, logger zerolog.Logger) Store {
	return &fileStore{
		baseDir: baseDir,
		logger:  logger.With().Str("component", "file-store").Logger(),
	}
}

func (s *fileStore) resolve(name string) string {
	if s.baseDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.baseDir, name)
}

// Open opens a local file for reading.
func (s *fileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.resolve(name)
	s.logger.Debug().Str("file", path).Msg("opening file")

	file, err := os.Open(path)
	if err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to open file")
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	return wrapReader(path, file)
}

// Create truncates or creates a local file, creating parent directories as needed.
func (s *fileStore) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.resolve(name)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			s.logger.Error().Err(err).Str("dir", dir).Msg("failed to create directory")
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.logger.Debug().Str("file", path).Msg("creating file")

	file, err := os.Create(path)
	if err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to create file")
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}

	return wrapWriter(path, file), nil
}
