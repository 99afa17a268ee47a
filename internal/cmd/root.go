package cmd

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/marknote/internal/config"
	"github.com/stateful/marknote/internal/log"
	"github.com/stateful/marknote/internal/version"
	"github.com/stateful/marknote/pkg/document/editor"
)

const configName = "marknote"

type commonFlags struct {
	configPath string
	logEnabled bool
	logPath    string
	verbose    bool

	// Resolved in PersistentPreRunE.
	cfg    *config.Config
	logger *zap.Logger
}

func Root() *cobra.Command {
	cFlags := &commonFlags{}

	cmd := cobra.Command{
		Use:   "marknote",
		Short: "Read, edit, and write structured markdown documents",
		Long: `marknote converts markdown into a typed block tree and back.

Settings are read from marknote.yaml or marknote.toml in the current
directory unless --config points elsewhere.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cFlags.configPath)
			if err != nil {
				return err
			}
			cFlags.cfg = cfg

			if cFlags.logEnabled {
				cfg.Log.Enabled = true
			}
			if cFlags.logPath != "" {
				cfg.Log.Enabled = true
				cfg.Log.Path = cFlags.logPath
			}
			if cFlags.verbose {
				cfg.Log.Enabled = true
				cfg.Log.Verbose = true
			}
			if cfg.Log.Enabled {
				if err := log.Set(cfg.Log.Path, cfg.Log.Verbose); err != nil {
					return err
				}
			}

			cFlags.logger = log.Get()
			cFlags.logger.Debug("configuration loaded", zap.String("version", version.BaseVersion()), zap.Any("config", cfg))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			log.Flush()
		},
	}

	pflags := cmd.PersistentFlags()
	pflags.StringVar(&cFlags.configPath, "config", "", "Path to a configuration file. Defaults to marknote.yaml or marknote.toml in the current directory.")
	pflags.BoolVar(&cFlags.logEnabled, "log", false, "Enable logging. Logs go to stderr unless --log-file is set.")
	pflags.StringVar(&cFlags.logPath, "log-file", "", "Write logs to the given file.")
	pflags.BoolVar(&cFlags.verbose, "verbose", false, "Enable debug logging.")

	cmd.AddCommand(fmtCmd(cFlags))
	cmd.AddCommand(jsonCmd(cFlags))
	cmd.AddCommand(treeCmd(cFlags))
	cmd.AddCommand(applyCmd(cFlags))

	return &cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config %q", path)
		}
		ext := filepath.Ext(path)
		if ext == "" {
			return nil, errors.Errorf("cannot detect the type of config %q", path)
		}
		return config.Parse(ext[1:], data)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to get cwd")
	}

	loader := config.NewLoader(configName, os.DirFS(cwd), config.WithLogger(log.Get()))
	cfg, err := loader.RootConfig()
	if errors.Is(err, config.ErrRootConfigNotFound) {
		return config.Default(), nil
	}
	return cfg, err
}

func (f *commonFlags) editorOptions() []editor.Option {
	return []editor.Option{
		editor.WithLogger(f.logger),
		editor.WithMarkdownOptions(f.cfg.MarkdownOptions()...),
	}
}
