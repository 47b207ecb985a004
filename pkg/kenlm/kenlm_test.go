package kenlm

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samcharles93/kenlm/internal/logger"
	"github.com/samcharles93/kenlm/pkg/lmbin"
)

func writeModel(t *testing.T, header []byte, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lm.binary")
	data := append(append([]byte{}, header...), body...)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func validModel(t *testing.T) string {
	ref := lmbin.ReferenceBytes()
	return writeModel(t, ref[:], "probing tables")
}

type recordingEngine struct {
	calls int
	body  string
	err   error
}

func (e *recordingEngine) LoadModel(_ context.Context, m *Model) error {
	e.calls++
	e.body = string(m.File.Body())
	return e.err
}

func TestLoadHandsValidatedModelToEngine(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	eng := &recordingEngine{}
	m, err := Load(context.Background(), validModel(t), eng,
		WithLogger(slog.New(slog.NewJSONHandler(&logBuf, &slog.HandlerOptions{Level: slog.LevelDebug}))))
	require.NoError(t, err)
	defer func() { require.NoError(t, m.Close()) }()

	assert.Equal(t, 1, eng.calls)
	assert.Equal(t, "probing tables", eng.body)
	assert.NotEqual(t, uuid.Nil, m.ID)
	assert.True(t, m.Header().Equal(lmbin.Reference()))
	assert.Contains(t, logBuf.String(), m.ID.String())
	assert.Contains(t, logBuf.String(), "model loaded")
}

func TestLoadNeverHandsOffInvalidModels(t *testing.T) {
	t.Parallel()

	v4 := lmbin.ReferenceBytes()
	copy(v4[:], "mmap lm http://kheafield.com/code format version 4\n\x00")

	tests := []struct {
		name     string
		path     func(t *testing.T) string
		isFormat bool
		target   error
	}{
		{
			name:     "version mismatch",
			path:     func(t *testing.T) string { return writeModel(t, v4[:], "") },
			isFormat: true,
			target:   lmbin.ErrSanityFormat,
		},
		{
			name:   "truncated",
			path:   func(t *testing.T) string { return writeModel(t, v4[:40], "") },
			target: io.ErrUnexpectedEOF,
		},
		{
			name:   "missing",
			path:   func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.binary") },
			target: fs.ErrNotExist,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := &recordingEngine{}
			m, err := Load(context.Background(), tt.path(t), eng, WithLogger(slog.New(slog.DiscardHandler)))
			require.Error(t, err)
			assert.Nil(t, m)
			assert.Zero(t, eng.calls)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.isFormat, lmbin.IsSanityFormat(err))
			assert.Equal(t, !tt.isFormat, lmbin.IsIO(err))
		})
	}
}

func TestLoadEngineFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("engine exploded")
	var seen *Model
	eng := EngineFunc(func(_ context.Context, m *Model) error {
		seen = m
		return boom
	})

	m, err := Load(context.Background(), validModel(t), eng, WithLogger(slog.New(slog.DiscardHandler)), WithoutMmap())
	require.ErrorIs(t, err, boom)
	require.Nil(t, m)
	require.NotNil(t, seen)
	assert.Nil(t, seen.File, "model should be released after engine failure")
}

func TestLoadNilEngine(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), validModel(t), nil)
	require.ErrorIs(t, err, ErrNilEngine)
}

func TestOpenCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Open(ctx, validModel(t), WithLogger(slog.New(slog.DiscardHandler)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestOpenUsesContextLogger(t *testing.T) {
	t.Parallel()

	var logBuf bytes.Buffer
	ctx := logger.WithContext(context.Background(), logger.Text(&logBuf, slog.LevelDebug))

	m, err := Open(ctx, validModel(t), WithoutMmap())
	require.NoError(t, err)
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	assert.Contains(t, logBuf.String(), "sanity header ok")
	assert.Contains(t, logBuf.String(), "mapped=false")
}

func TestLoadIsSilentWithoutLogger(t *testing.T) {
	// Swaps os.Stderr, so it must not run in parallel.
	stderr, err := os.CreateTemp(t.TempDir(), "stderr")
	require.NoError(t, err)
	saved := os.Stderr
	os.Stderr = stderr
	t.Cleanup(func() { os.Stderr = saved })

	m, err := Load(context.Background(), validModel(t), EngineFunc(func(context.Context, *Model) error { return nil }))
	require.NoError(t, err)
	require.NoError(t, m.Close())

	_, err = Open(context.Background(), writeModel(t, []byte("\\data\\\n"), ""))
	require.Error(t, err)

	require.NoError(t, stderr.Close())
	out, err := os.ReadFile(stderr.Name())
	require.NoError(t, err)
	assert.Empty(t, string(out))
}

func TestWithNilLogger(t *testing.T) {
	t.Parallel()

	m, err := Open(context.Background(), validModel(t), WithLogger(nil))
	require.NoError(t, err)
	require.NoError(t, m.Close())
}
