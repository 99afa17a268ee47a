package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/marknote/pkg/document/editor"
)

const stdinName = "-"

func readSource(cmd *cobra.Command, name string) ([]byte, error) {
	if name == stdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read from stdin")
	}
	data, err := os.ReadFile(name)
	return data, errors.Wrapf(err, "failed to read file %q", name)
}

func loadState(cmd *cobra.Command, cFlags *commonFlags, name string) (*editor.State, error) {
	data, err := readSource(cmd, name)
	if err != nil {
		return nil, err
	}
	return editor.Load(string(data), cFlags.editorOptions()...), nil
}

// writeFile replaces the content of name keeping its permissions.
func writeFile(name string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(name); err == nil {
		mode = info.Mode().Perm()
	}
	return errors.Wrapf(os.WriteFile(name, data, mode), "failed to write file %q", name)
}
