// Package yaml wraps goccy/go-yaml with schema validation and errors that
// point into the source document.
package yaml

import (
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

type Decoder struct {
	d *yaml.Decoder
}

// NewDecoder returns a [Decoder] that reads from r. Unknown fields are
// rejected by the schema, not by the decoder.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r),
	}
}

func (d *Decoder) Decode(v any) error {
	err := d.d.Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return err //nolint:wrapcheck // Callers check for io.EOF.
	}

	var yamlErr yaml.Error
	if errors.As(err, &yamlErr) {
		return NewError(errors.New(yamlErr.GetMessage()), WithToken(yamlErr.GetToken()))
	}

	//nolint:wrapcheck // Return the original error if it's not a [yaml.Error].
	return err
}
