package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockStore is a mock implementation of the Store interface for testing.
type mockStore struct {
	openFunc   func(ctx context.Context, name string) (io.ReadCloser, error)
	createFunc func(ctx context.Context, name string) (io.WriteCloser, error)
}

func (m *mockStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if m.openFunc != nil {
		return m.openFunc(ctx, name)
	}
	return nil, errors.New("not implemented")
}

func (m *mockStore) Create(ctx context.Context, name string) (io.WriteCloser, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, name)
	}
	return nil, errors.New("not implemented")
}

// captureWriter records everything written and whether Close was called.
type captureWriter struct {
	bytes.Buffer
	closed   bool
	closeErr error
}

func (w *captureWriter) Close() error {
	w.closed = true
	return w.closeErr
}

func readerOf(s string) io.ReadCloser {
	return io.NopCloser(bytes.NewBufferString(s))
}

func TestFallbackStore_Open_PrimarySuccess(t *testing.T) {
	primary := &mockStore{
		openFunc: func(ctx context.Context, name string) (io.ReadCloser, error) {
			assert.Equal(t, "inventory.txt", name)
			return readerOf("from-s3"), nil
		},
	}
	local := &mockStore{
		openFunc: func(ctx context.Context, name string) (io.ReadCloser, error) {
			t.Error("local store should not be called when primary succeeds")
			return nil, errors.New("should not be called")
		},
	}

	store := NewFallbackStore(primary, local, true, zerolog.Nop())

	assert.Equal(t, "from-s3", readString(t, store, "inventory.txt"))
}

func TestFallbackStore_Open_PrimaryFailsFallsBackToLocal(t *testing.T) {
	primary := &mockStore{
		openFunc: func(ctx context.Context, name string) (io.ReadCloser, error) {
			return nil, errors.New("S3 connection failed")
		},
	}
	local := &mockStore{
		openFunc: func(ctx context.Context, name string) (io.ReadCloser, error) {
			return readerOf("from-disk"), nil
		},
	}

	store := NewFallbackStore(primary, local, true, zerolog.Nop())

	assert.Equal(t, "from-disk", readString(t, store, "inventory.txt"))
}

func TestFallbackStore_Open_PrimaryDisabledOrNil(t *testing.T) {
	primary := &mockStore{
		openFunc: func(ctx context.Context, name string) (io.ReadCloser, error) {
			t.Error("primary store should not be called when disabled")
			return nil, errors.New("should not be called")
		},
	}
	local := &mockStore{
		openFunc: func(ctx context.Context, name string) (io.ReadCloser, error) {
			return readerOf("local"), nil
		},
	}

	assert.Equal(t, "local", readString(t, NewFallbackStore(primary, local, false, zerolog.Nop()), "x"))
	assert.Equal(t, "local", readString(t, NewFallbackStore(nil, local, true, zerolog.Nop()), "x"))
}

func TestFallbackStore_Open_BothFail(t *testing.T) {
	primary := &mockStore{
		openFunc: func(ctx context.Context, name string) (io.ReadCloser, error) {
			return nil, errors.New("S3 error")
		},
	}
	local := &mockStore{
		openFunc: func(ctx context.Context, name string) (io.ReadCloser, error) {
			return nil, errors.New("file not found")
		},
	}

	store := NewFallbackStore(primary, local, true, zerolog.Nop())

	rc, err := store.Open(context.Background(), "x")
	assert.Nil(t, rc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestFallbackStore_Create(t *testing.T) {
	tests := []struct {
		name          string
		primaryErr    error
		expectPrimary string
		expectLocal   string
	}{
		{
			name:          "primary succeeds",
			expectPrimary: "payload",
		},
		{
			name:        "primary close fails",
			primaryErr:  errors.New("upload failed"),
			expectLocal: "payload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primaryOut := &captureWriter{closeErr: tt.primaryErr}
			localOut := &captureWriter{}

			primary := &mockStore{
				createFunc: func(ctx context.Context, name string) (io.WriteCloser, error) {
					return primaryOut, nil
				},
			}
			local := &mockStore{
				createFunc: func(ctx context.Context, name string) (io.WriteCloser, error) {
					return localOut, nil
				},
			}

			store := NewFallbackStore(primary, local, true, zerolog.Nop())
			writeString(t, store, "inventory.txt", "payload")

			assert.True(t, primaryOut.closed)
			if tt.expectPrimary != "" {
				assert.Equal(t, tt.expectPrimary, primaryOut.String())
				assert.False(t, localOut.closed)
			}
			if tt.expectLocal != "" {
				assert.Equal(t, tt.expectLocal, localOut.String())
				assert.True(t, localOut.closed)
			}
		})
	}
}

func TestFallbackStore_Create_DisabledWritesLocalDirectly(t *testing.T) {
	localOut := &captureWriter{}
	local := &mockStore{
		createFunc: func(ctx context.Context, name string) (io.WriteCloser, error) {
			return localOut, nil
		},
	}

	store := NewFallbackStore(nil, local, false, zerolog.Nop())
	wc, err := store.Create(context.Background(), "inventory.txt")
	require.NoError(t, err)

	assert.Same(t, localOut, wc)
}
