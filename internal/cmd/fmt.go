package cmd

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/stateful/marknote/pkg/document/editor"
)

func fmtCmd(cFlags *commonFlags) *cobra.Command {
	var (
		write    bool
		patterns []string
	)

	cmd := cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format markdown files into canonical form.",
		Long: `Format parses each file into a document tree and writes it back.

Use "-" to read from stdin. Directories are walked recursively and
only files whose name matches one of the patterns are formatted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			globs, err := parseGlobs(patterns)
			if err != nil {
				return err
			}

			files, err := collectFiles(args, globs)
			if err != nil {
				return err
			}

			if write {
				for _, name := range files {
					if name == stdinName {
						return errors.New("cannot write stdin in place")
					}
				}
			}

			results := make([][]byte, len(files))

			var g errgroup.Group
			g.SetLimit(runtime.NumCPU())
			for i, name := range files {
				i, name := i, name
				g.Go(func() error {
					data, err := readSource(cmd, name)
					if err != nil {
						return err
					}

					formatted := formatSource(data, cFlags.editorOptions()...)

					if !write {
						results[i] = formatted
						return nil
					}
					if bytes.Equal(data, formatted) {
						return nil
					}
					cFlags.logger.Info("formatted file", zap.String("name", name))
					return writeFile(name, formatted)
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for _, result := range results {
				if _, err := cmd.OutOrStdout().Write(result); err != nil {
					return errors.Wrap(err, "failed to write result")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result to the source file instead of stdout.")
	cmd.Flags().StringSliceVar(&patterns, "pattern", []string{"*.md"}, "Glob patterns of file names to format when walking directories.")

	return &cmd
}

func formatSource(data []byte, opts ...editor.Option) []byte {
	// An empty file stays empty instead of gaining the paragraph of a
	// new document.
	if len(data) == 0 {
		return nil
	}
	return []byte(editor.Load(string(data), opts...).Export())
}

func parseGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, item := range patterns {
		g, err := glob.Compile(item)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid pattern %q", item)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// collectFiles expands directories in paths into the files they contain
// that match globs. Files named explicitly are always kept.
func collectFiles(paths []string, globs []glob.Glob) ([]string, error) {
	var result []string

	for _, p := range paths {
		if p == stdinName {
			result = append(result, p)
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %q", p)
		}
		if !info.IsDir() {
			result = append(result, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !matchAny(globs, d.Name()) {
				return nil
			}
			result = append(result, path)
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk %q", p)
		}
	}

	return result, nil
}
