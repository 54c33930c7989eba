// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package confbind

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/z5labs/confbind/codec"
	"github.com/z5labs/confbind/document"
	"github.com/z5labs/confbind/internal/try"
	"github.com/z5labs/confbind/schema"

	"github.com/spf13/afero"
)

// Manager binds configuration files to typed values using a schema.
type Manager struct {
	binder *Binder

	fs           afero.Fs
	defaultCodec codec.Codec
	binderOpts   []BinderOption
}

// Option represents options for configuring a Manager.
type Option func(*Manager)

// WithFS sets the filesystem used by ReadFile, WriteFile and
// WriteDefaults. Defaults to the OS filesystem.
func WithFS(fsys afero.Fs) Option {
	return func(m *Manager) {
		m.fs = fsys
	}
}

// WithDefaultCodec sets the codec used when writing to a path whose
// extension has no registered codec. Defaults to [codec.Default].
func WithDefaultCodec(c codec.Codec) Option {
	return func(m *Manager) {
		m.defaultCodec = c
	}
}

// WithBinderOptions configures the underlying Binder.
func WithBinderOptions(opts ...BinderOption) Option {
	return func(m *Manager) {
		m.binderOpts = append(m.binderOpts, opts...)
	}
}

// New returns a Manager over the given schema.
func New(s *schema.Schema, opts ...Option) *Manager {
	m := &Manager{
		fs:           afero.NewOsFs(),
		defaultCodec: codec.Default,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.binder = NewBinder(s, m.binderOpts...)
	return m
}

// Binder returns the underlying Binder.
func (m *Manager) Binder() *Binder {
	return m.binder
}

// ReadFile reads the config file at path and binds it into v.
//
// The codec is chosen from the path extension before the file is
// touched, so an unknown extension fails with a
// [codec.UnsupportedFormatError] even if the file does not exist. A
// missing file fails with a [FileNotFoundError] before any parsing.
func (m *Manager) ReadFile(ctx context.Context, path string, v any) error {
	c, err := codec.ForExtension(filepath.Ext(path))
	if err != nil {
		return err
	}

	err = ctx.Err()
	if err != nil {
		return err
	}

	b, err := afero.ReadFile(m.fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return FileNotFoundError{Path: path, Cause: err}
	}
	if err != nil {
		return err
	}

	doc, err := c.Decode(b)
	if err != nil {
		return err
	}
	return m.binder.Bind(doc, v)
}

// ReadFrom reads config text of the given format from r and binds it
// into v. If r is an io.Closer it is closed before ReadFrom returns.
func (m *Manager) ReadFrom(ctx context.Context, r io.Reader, format string, v any) (err error) {
	defer try.Close(&err, r)

	c, err := codec.ForExtension(format)
	if err != nil {
		return err
	}

	err = ctx.Err()
	if err != nil {
		return err
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	doc, err := c.Decode(b)
	if err != nil {
		return err
	}
	return m.binder.Bind(doc, v)
}

// Parse binds an already parsed document into v.
func (m *Manager) Parse(doc *document.Document, v any) error {
	return m.binder.Bind(doc, v)
}

// WriteOption represents options for configuring WriteFile and WriteDefaults.
type WriteOption func(*writeOptions)

type writeOptions struct {
	format string
}

// WithFormat forces the codec used to encode, overriding the path extension.
func WithFormat(format string) WriteOption {
	return func(wo *writeOptions) {
		wo.format = format
	}
}

// WriteFile serializes v and writes it to path, fully overwriting any
// existing file. The codec is chosen from the path extension, falling
// back to the manager's default codec for unknown extensions.
func (m *Manager) WriteFile(ctx context.Context, path string, v any, opts ...WriteOption) error {
	doc, err := m.binder.Serialize(v)
	if err != nil {
		return err
	}
	return m.writeDocument(ctx, path, doc, opts)
}

// WriteDefaults writes a default document for the schema to path,
// suitable for a user to hand edit. See [Binder.Defaults].
func (m *Manager) WriteDefaults(ctx context.Context, path string, opts ...WriteOption) error {
	return m.writeDocument(ctx, path, m.binder.Defaults(), opts)
}

// Valid reports whether every schema field is present on v. See
// [Binder.Valid].
func (m *Manager) Valid(v any) bool {
	return m.binder.Valid(v)
}

func (m *Manager) writeDocument(ctx context.Context, path string, doc *document.Document, opts []WriteOption) error {
	var wo writeOptions
	for _, opt := range opts {
		opt(&wo)
	}

	c, err := m.writeCodec(path, wo)
	if err != nil {
		return err
	}

	b, err := c.Encode(doc)
	if err != nil {
		return err
	}

	err = ctx.Err()
	if err != nil {
		return err
	}
	return afero.WriteFile(m.fs, path, b, 0o644)
}

func (m *Manager) writeCodec(path string, wo writeOptions) (codec.Codec, error) {
	if wo.format != "" {
		return codec.ForExtension(wo.format)
	}

	c, err := codec.ForExtension(filepath.Ext(path))
	if err != nil {
		return m.defaultCodec, nil
	}
	return c, nil
}

// Read reads and binds the config file at path into a new T.
func Read[T any](ctx context.Context, m *Manager, path string) (T, error) {
	var cfg T
	err := m.ReadFile(ctx, path, &cfg)
	return cfg, err
}
