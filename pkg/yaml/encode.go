package yaml

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// Encoder writes YAML documents with two-space indentation and indented
// sequences.
type Encoder struct {
	w      io.Writer
	e      *yaml.Encoder
	header []string
}

type EncoderOpt func(*Encoder)

// WithHeader writes each line as a comment before the first document.
func WithHeader(lines ...string) EncoderOpt {
	return func(e *Encoder) {
		e.header = append(e.header, lines...)
	}
}

func NewEncoder(w io.Writer, opts ...EncoderOpt) *Encoder {
	e := &Encoder{
		w: w,
		e: yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(true)),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Encoder) Encode(v any) error {
	for _, line := range e.header {
		_, err := fmt.Fprintf(e.w, "# %s\n", line)
		if err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	e.header = nil

	return e.e.Encode(v) //nolint:wrapcheck // Return the original error.
}

func (e *Encoder) Close() error {
	return e.e.Close() //nolint:wrapcheck // Return the original error.
}

// Marshal encodes v as a single YAML document.
func Marshal(v any, opts ...EncoderOpt) ([]byte, error) {
	var buf bytes.Buffer

	enc := NewEncoder(&buf, opts...)

	err := enc.Encode(v)
	if err != nil {
		return nil, err
	}

	err = enc.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
