package yaml

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// ErrorWrapper applies a fixed set of [ErrorOpt]s to every [Error] it wraps.
type ErrorWrapper struct {
	Opts []ErrorOpt
}

func NewErrorWrapper(opts ...ErrorOpt) *ErrorWrapper {
	return &ErrorWrapper{Opts: opts}
}

// Wrap applies the wrapper's options, then opts, to err if it is an [Error].
// Other errors are returned unmodified.
func (ew *ErrorWrapper) Wrap(err error, opts ...ErrorOpt) error {
	if err == nil {
		return nil
	}

	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		for _, opt := range ew.Opts {
			opt(yamlErr)
		}

		for _, opt := range opts {
			opt(yamlErr)
		}

		return yamlErr
	}

	return err
}

// Error is a YAML error located either by a [yaml.Path] or by the
// [token.Token] where it occurred. When Source is set, the message includes
// the offending lines.
type Error struct {
	Err    error
	Path   *yaml.Path
	Token  *token.Token
	Source []byte
}

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

type ErrorOpt func(e *Error)

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

func (e Error) Error() string {
	if e.Err == nil {
		return ""
	}

	if e.Path == nil && e.Token == nil {
		return e.Err.Error()
	}

	msg, err := e.annotate()
	if err != nil {
		if e.Path != nil {
			slog.Debug("annotate source",
				slog.String("path", e.Path.String()),
				slog.Any("err", err),
			)

			return fmt.Sprintf("error at %s: %v", e.Path, e.Err)
		}

		return e.Err.Error()
	}

	return msg
}

func (e Error) Unwrap() error {
	return e.Err
}

func (e Error) annotate() (string, error) {
	tk := e.Token
	if tk == nil {
		if len(e.Source) == 0 {
			return "", errors.New("no source")
		}

		var err error

		tk, err = tokenFromPath(e.Source, e.Path)
		if err != nil {
			return "", err
		}
	}

	var pp printer.Printer

	snippet := pp.PrintErrorToken(tk, false)

	return fmt.Sprintf("[%d:%d] %v:\n%s", tk.Position.Line, tk.Position.Column, e.Err, snippet), nil
}

func tokenFromPath(source []byte, path *yaml.Path) (*token.Token, error) {
	file, err := parser.ParseBytes(source, 0)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}

	node, err := path.FilterFile(file)
	if err != nil {
		return nil, fmt.Errorf("filter by path: %w", err)
	}

	// FilterFile returns the value node; point at the key when there is one.
	if tk := keyToken(file, path); tk != nil {
		return tk, nil
	}

	return node.GetToken(), nil
}

func keyToken(file *ast.File, path *yaml.Path) *token.Token {
	s := path.String()

	lastDot := strings.LastIndex(s, ".")
	if lastDot == -1 || lastDot <= strings.LastIndex(s, "[") {
		return nil
	}

	parentPath, err := yaml.PathString(s[:lastDot])
	if err != nil {
		return nil
	}

	parent, err := parentPath.FilterFile(file)
	if err != nil {
		return nil
	}

	mapping, ok := parent.(*ast.MappingNode)
	if !ok {
		return nil
	}

	for _, v := range mapping.Values {
		if v.Key.String() == s[lastDot+1:] {
			return v.Key.GetToken()
		}
	}

	return nil
}
