// Package storage provides the byte destinations inventory snapshots and
// reports are written to: local files, S3 objects, or S3 with a local fallback.
//
// Names ending in ".gz" are transparently gzip-compressed by every store.
package storage

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"strings"
)

// Store opens named objects for reading and creates them for writing.
type Store interface {
	// Open returns a reader over the named object.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Create truncates (or creates) the named object and returns a writer.
	// Data is only guaranteed to be persisted once Close returns nil.
	Create(ctx context.Context, name string) (io.WriteCloser, error)
}

func isCompressed(name string) bool {
	return strings.HasSuffix(name, ".gz")
}

// gzipReadCloser closes both the gzip stream and the underlying object.
type gzipReadCloser struct {
	*gzip.Reader
	underlying io.Closer
}

func (r *gzipReadCloser) Close() error {
	gzErr := r.Reader.Close()
	if err := r.underlying.Close(); err != nil {
		return err
	}
	return gzErr
}

// gzipWriteCloser flushes the gzip stream before closing the underlying object.
type gzipWriteCloser struct {
	*gzip.Writer
	underlying io.WriteCloser
}

func (w *gzipWriteCloser) Close() error {
	if err := w.Writer.Close(); err != nil {
		w.underlying.Close()
		return err
	}
	return w.underlying.Close()
}

func wrapReader(name string, rc io.ReadCloser) (io.ReadCloser, error) {
	if !isCompressed(name) {
		return rc, nil
	}
	gz, err := gzip.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
	}
	return &gzipReadCloser{Reader: gz, underlying: rc}, nil
}

func wrapWriter(name string, wc io.WriteCloser) io.WriteCloser {
	if !isCompressed(name) {
		return wc
	}
	return &gzipWriteCloser{Writer: gzip.NewWriter(wc), underlying: wc}
}
