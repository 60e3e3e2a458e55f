package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/rs/zerolog"
)

// fallbackStore tries the primary store (S3) first, then the local fallback.
type fallbackStore struct {
	primary  Store
	fallback Store
	enabled  bool
	logger   zerolog.Logger
}

// NewFallbackStore creates a store that prefers primary and falls back to fallback.
// If primary is nil or enabled is false, only the fallback is used.
func NewFallbackStore(primary, fallback Store, enabled bool, logger zerolog.Logger) Store {
	return &fallbackStore{
		primary:  primary,
		fallback: fallback,
		enabled:  enabled,
		logger:   logger.With().Str("component", "fallback-store").Logger(),
	}
}

func (s *fallbackStore) usePrimary() bool {
	return s.enabled && s.primary != nil
}

// Open attempts to read from the primary store, then from the fallback.
func (s *fallbackStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if s.usePrimary() {
		rc, err := s.primary.Open(ctx, name)
		if err == nil {
			return rc, nil
		}

		s.logger.Warn().
			Err(err).
			Str("name", name).
			Msg("failed to read from primary store, falling back to local file system")
	} else {
		s.logger.Debug().
			Bool("enabled", s.enabled).
			Bool("has_primary", s.primary != nil).
			Msg("primary store disabled or not configured, using local file system")
	}

	return s.fallback.Open(ctx, name)
}

// Create returns a writer that, on Close, writes to the primary store and
// falls back to the local store if the primary write fails.
func (s *fallbackStore) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if !s.usePrimary() {
		return s.fallback.Create(ctx, name)
	}
	return &fallbackWriter{ctx: ctx, name: name, store: s}, nil
}

type fallbackWriter struct {
	ctx   context.Context
	name  string
	store *fallbackStore
	buf   bytes.Buffer
}

func (w *fallbackWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *fallbackWriter) Close() error {
	err := writeAll(w.ctx, w.store.primary, w.name, w.buf.Bytes())
	if err == nil {
		return nil
	}

	w.store.logger.Warn().
		Err(err).
		Str("name", w.name).
		Msg("failed to write to primary store, falling back to local file system")

	return writeAll(w.ctx, w.store.fallback, w.name, w.buf.Bytes())
}

func writeAll(ctx context.Context, store Store, name string, data []byte) error {
	wc, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := wc.Write(data); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
