// Package kenlm loads binary KenLM models for a native scoring engine.
//
// A model is handed to the engine only after its sanity header matched the
// reference header. The engine never sees an unvalidated file.
package kenlm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/samcharles93/kenlm/internal/logger"
	"github.com/samcharles93/kenlm/pkg/lmbin"
)

// ErrNilEngine is returned by Load when no engine is given.
var ErrNilEngine = errors.New("kenlm: nil engine")

// Engine is the native lookup engine. It receives validated models only.
type Engine interface {
	LoadModel(ctx context.Context, m *Model) error
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, m *Model) error

func (f EngineFunc) LoadModel(ctx context.Context, m *Model) error {
	return f(ctx, m)
}

// Model is a validated binary model.
type Model struct {
	// ID correlates log lines for one load.
	ID   uuid.UUID
	Path string
	File *lmbin.File
}

// Header returns the validated sanity header.
func (m *Model) Header() lmbin.SanityHeader {
	return m.File.Header
}

// Close releases the model's memory.
func (m *Model) Close() error {
	if m == nil || m.File == nil {
		return nil
	}
	err := m.File.Close()
	m.File = nil
	return err
}

type options struct {
	log      logger.Logger
	openOpts []lmbin.OpenOption
}

// Option configures Open and Load.
type Option func(*options)

// WithLogger sends load events to l. Without it, Open and Load are silent.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			o.log = logger.Discard()
			return
		}
		o.log = logger.New(l.Handler())
	}
}

// WithoutMmap reads models into memory instead of mapping them.
func WithoutMmap() Option {
	return func(o *options) { o.openOpts = append(o.openOpts, lmbin.WithoutMmap()) }
}

func buildOptions(ctx context.Context, opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.log != nil {
		return o
	}
	if l, ok := logger.Lookup(ctx); ok {
		o.log = l
	} else {
		o.log = logger.Discard()
	}
	return o
}

// Open validates and maps the model at path without handing it to an
// engine. Errors keep the distinction between unreadable files and
// incompatible ones: use lmbin.IsSanityFormat.
func Open(ctx context.Context, path string, opts ...Option) (*Model, error) {
	o := buildOptions(ctx, opts)
	return open(ctx, path, o)
}

func open(ctx context.Context, path string, o options) (*Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New()
	log := o.log.With("model_id", id.String(), "path", path)

	f, err := lmbin.Open(path, o.openOpts...)
	if err != nil {
		if lmbin.IsSanityFormat(err) {
			log.Error("model rejected", "error", err)
			return nil, fmt.Errorf("kenlm: %s is not a compatible binary model: %w", path, err)
		}
		log.Error("model unreadable", "error", err)
		return nil, fmt.Errorf("kenlm: read %s: %w", path, err)
	}

	log.Debug("sanity header ok", "bytes", f.Size(), "mapped", f.Mapped())
	return &Model{ID: id, Path: path, File: f}, nil
}

// Load validates the model at path and hands it to engine. If the engine
// fails the model is released.
func Load(ctx context.Context, path string, engine Engine, opts ...Option) (*Model, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	o := buildOptions(ctx, opts)

	m, err := open(ctx, path, o)
	if err != nil {
		return nil, err
	}

	log := o.log.With("model_id", m.ID.String(), "path", path)
	if err := ctx.Err(); err != nil {
		_ = m.Close()
		return nil, err
	}
	if err := engine.LoadModel(ctx, m); err != nil {
		_ = m.Close()
		log.Error("engine load failed", "error", err)
		return nil, fmt.Errorf("kenlm: engine load %s: %w", path, err)
	}

	log.Info("model loaded", "bytes", m.File.Size())
	return m, nil
}
