package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/macropower/pgn/api"
	"github.com/macropower/pgn/api/v1beta1"
	"github.com/macropower/pgn/api/v1beta1/configs"
	"github.com/macropower/pgn/pkg/yaml"
)

// Validator validates configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// Loader decodes and validates a configuration of any kind T.
type Loader[T v1beta1.Object] struct {
	validator Validator
	newFunc   func() T
	yamlError *yaml.ErrorWrapper
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] for data. newFunc constructs the
// value that data is decoded into (e.g. [configs.New]).
func NewLoaderFromBytes[T v1beta1.Object](data []byte, newFunc func() T, validator Validator) *Loader[T] {
	return &Loader[T]{
		data:      data,
		newFunc:   newFunc,
		validator: validator,
		yamlError: yaml.NewErrorWrapper(yaml.WithSource(data)),
	}
}

// NewLoaderFromFile creates a [Loader] for the file at path.
func NewLoaderFromFile[T v1beta1.Object](path string, newFunc func() T, validator Validator) (*Loader[T], error) {
	data, err := api.ReadFile(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Return the original error.
	}

	return NewLoaderFromBytes(data, newFunc, validator), nil
}

// Validate checks the data against the schema.
func (l *Loader[T]) Validate() error {
	var data any

	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(&data)
	if errors.Is(err, io.EOF) {
		return l.validateData(map[string]any{})
	}
	if err != nil {
		return l.yamlError.Wrap(err)
	}

	return l.validateData(data)
}

func (l *Loader[T]) validateData(data any) error {
	if l.validator == nil {
		return nil
	}

	return l.yamlError.Wrap(l.validator.Validate(data))
}

// Load decodes the data and applies defaults.
//
//nolint:ireturn // Generic type parameter.
func (l *Loader[T]) Load() (T, error) {
	cfg := l.newFunc()

	err := yaml.NewDecoder(bytes.NewReader(l.data)).Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		var zero T

		return zero, l.yamlError.Wrap(err)
	}

	cfg.EnsureDefaults()

	return cfg, nil
}

// Load reads, validates and decodes the [configs.Config] at path. A missing
// file yields the defaults.
func Load(path string) (*configs.Config, error) {
	validator, err := configs.Validator()
	if err != nil {
		return nil, fmt.Errorf("create validator: %w", err)
	}

	l, err := NewLoaderFromFile(path, configs.New, validator)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("config file not found, using defaults", slog.String("path", path))

		return configs.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	err = l.Validate()
	if err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}

	cfg, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	slog.Debug("loaded config", slog.String("path", path))

	return cfg, nil
}
