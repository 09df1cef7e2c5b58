// Package configs provides the Configuration kind, the user-level settings
// file of pgn.
package configs

//go:generate go run ../../../internal/schemagen -o configs.v1beta1.json

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/invopop/jsonschema"

	"github.com/macropower/pgn/api"
	"github.com/macropower/pgn/api/v1beta1"
	"github.com/macropower/pgn/pkg/paginator"
	"github.com/macropower/pgn/pkg/ui"
	"github.com/macropower/pgn/pkg/yaml"
)

const (
	Kind = "Configuration"

	// SchemaURL identifies the reflected schema when it is compiled.
	SchemaURL = "https://pgn.macropower.dev/configs.v1beta1.json"

	DefaultAddr  = "127.0.0.1:8080"
	DefaultTitle = "pgn"
)

var (
	// ValidKinds contains the valid kind values for configurations.
	ValidKinds = []string{Kind}

	_ v1beta1.Object = (*Config)(nil)

	schemaOnce sync.Once
	schemaJSON []byte
	schemaErr  error

	validatorOnce sync.Once
	validator     *yaml.Validator
	validatorErr  error
)

// Config is the pgn configuration file.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	// Paginator sets the default page geometry.
	Paginator *PaginatorConfig `json:"paginator,omitempty" jsonschema:"title=Paginator"`
	// UI configures the terminal UI.
	UI *ui.Config `json:"ui,omitempty" jsonschema:"title=UI"`
	// Serve configures the HTTP front end.
	Serve *ServeConfig `json:"serve,omitempty" jsonschema:"title=Serve"`

	v1beta1.TypeMeta `json:",inline"`
}

// PaginatorConfig sets the default page geometry.
type PaginatorConfig struct {
	// PageSize is the number of numbered buttons in the navigation window.
	PageSize int `json:"pageSize,omitempty" jsonschema:"title=Page Size,minimum=1"`
	// ItemsPerPage is the number of items shown on each page.
	ItemsPerPage int `json:"itemsPerPage,omitempty" jsonschema:"title=Items Per Page,minimum=1"`
}

// ServeConfig configures `pgn serve`.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `json:"addr,omitempty" jsonschema:"title=Address"`
	// Title is the HTML document title.
	Title string `json:"title,omitempty" jsonschema:"title=Title"`
}

// New creates a new [Config] with default values.
func New() *Config {
	c := &Config{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes unset fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Paginator == nil {
		c.Paginator = &PaginatorConfig{}
	}
	if c.Paginator.PageSize <= 0 {
		c.Paginator.PageSize = paginator.DefaultPageSize
	}
	if c.Paginator.ItemsPerPage <= 0 {
		c.Paginator.ItemsPerPage = paginator.DefaultItemsPerPage
	}

	if c.UI == nil {
		c.UI = ui.NewConfig()
	} else {
		c.UI.EnsureDefaults()
	}

	if c.Serve == nil {
		c.Serve = &ServeConfig{}
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
	if c.Serve.Title == "" {
		c.Serve.Title = DefaultTitle
	}
}

// Validate checks the settings that the schema cannot express.
func (c *Config) Validate() error {
	if c.UI != nil && c.UI.KeyBinds != nil {
		err := c.UI.KeyBinds.Validate()
		if err != nil {
			return fmt.Errorf("validate key binds: %w", err)
		}
	}

	return nil
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := api.MarshalYAML(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// Schema returns the JSON schema of [Config], reflected from the Go types.
func Schema() ([]byte, error) {
	schemaOnce.Do(func() {
		r := &jsonschema.Reflector{}
		s := r.Reflect(&Config{})
		s.ID = SchemaURL

		schemaJSON, schemaErr = json.MarshalIndent(s, "", "  ")
	})

	return schemaJSON, schemaErr
}

// Validator returns a [yaml.Validator] for the [Config] schema.
func Validator() (*yaml.Validator, error) {
	validatorOnce.Do(func() {
		var b []byte

		b, validatorErr = Schema()
		if validatorErr != nil {
			return
		}

		validator, validatorErr = yaml.NewValidator(SchemaURL, b)
	})

	return validator, validatorErr
}

// WriteDefault writes the default configuration to path. An existing file
// is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	type alias Config

	b, err := api.MarshalYAML(alias(*New()), yaml.WithHeader("yaml-language-server: $schema="+SchemaURL))
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	err = api.WriteDefaultFile(path, b, force, "configuration")
	if err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}

// GetPath returns the path to the user configuration file.
func GetPath() string {
	return api.GetConfigPath("config.yaml")
}
