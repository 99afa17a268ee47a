package config

import (
	"bytes"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/stateful/marknote/pkg/document/markdown"
)

const currentVersion = "v1alpha1"

// Config is the configuration of marknote, read from marknote.yaml
// or marknote.toml.
type Config struct {
	Version  string    `yaml:"version" toml:"version" validate:"required"`
	Markdown Markdown  `yaml:"markdown" toml:"markdown"`
	Log      Log       `yaml:"log" toml:"log"`
	Filters  []*Filter `yaml:"filters,omitempty" toml:"filters,omitempty" validate:"dive,required"`
}

type Markdown struct {
	// Indent is the number of spaces per nesting level, both when
	// reading and when writing markdown.
	Indent int `yaml:"indent" toml:"indent" validate:"min=1,max=8"`
}

type Log struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path,omitempty" toml:"path,omitempty"`
	Verbose bool   `yaml:"verbose" toml:"verbose"`
}

// MarkdownOptions converts the markdown section to parser and
// serializer options.
func (c *Config) MarkdownOptions() []markdown.Option {
	return []markdown.Option{markdown.WithIndent(c.Markdown.Indent)}
}

type versionOnly struct {
	Version string `yaml:"version" toml:"version"`
}

func ParseYAML(data []byte) (*Config, error) {
	var v versionOnly
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal version")
	}
	if err := checkVersion(v.Version); err != nil {
		return nil, err
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s config", v.Version)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to validate %s config", v.Version)
	}
	return cfg, nil
}

func ParseTOML(data []byte) (*Config, error) {
	var v versionOnly
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal version")
	}
	if err := checkVersion(v.Version); err != nil {
		return nil, err
	}

	cfg := Default()
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s config", v.Version)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to validate %s config", v.Version)
	}
	return cfg, nil
}

func checkVersion(version string) error {
	switch version {
	case currentVersion:
		return nil
	case "":
		return errors.New("missing version")
	default:
		return errors.Errorf("unknown version: %s", version)
	}
}

var validate = validator.New()

func validateConfig(cfg *Config) error {
	return errors.WithStack(validate.Struct(cfg))
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Version:  currentVersion,
		Markdown: Markdown{Indent: markdown.DefaultIndent},
	}
}
