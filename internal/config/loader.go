package config

import (
	"io/fs"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrRootConfigNotFound = errors.New("root configuration file not found")

// Types are tried in this order; the first file found wins.
var configTypes = []string{"yaml", "toml"}

// Loader allows to load configuration files from a file system.
type Loader struct {
	// configRootPath is a root path for the configuration file.
	// Typically, it's the current working directory.
	configRootPath fs.FS

	// configName is a name of the configuration file without extension.
	configName string

	logger *zap.Logger
}

type LoaderOption func(*Loader)

func WithLogger(logger *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

func NewLoader(configName string, configRootPath fs.FS, opts ...LoaderOption) *Loader {
	if configName == "" {
		panic("config name is not set")
	}

	l := &Loader{
		configRootPath: configRootPath,
		configName:     configName,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = zap.NewNop()
	}

	return l
}

// RootConfig reads and parses the configuration file from the root
// path. It returns [ErrRootConfigNotFound] if there is none.
func (l *Loader) RootConfig() (*Config, error) {
	for _, typ := range configTypes {
		name := l.configName + "." + typ

		data, err := fs.ReadFile(l.configRootPath, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", name)
		}

		l.logger.Debug("found configuration file", zap.String("name", name))
		return Parse(typ, data)
	}

	return nil, ErrRootConfigNotFound
}

// Parse parses data according to typ, which is "yaml" or "toml".
func Parse(typ string, data []byte) (*Config, error) {
	switch typ {
	case "yaml", "yml":
		return ParseYAML(data)
	case "toml":
		return ParseTOML(data)
	default:
		return nil, errors.Errorf("unsupported config type: %s", typ)
	}
}
