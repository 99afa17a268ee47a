package cmd

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func jsonCmd(cFlags *commonFlags) *cobra.Command {
	var compact bool

	cmd := cobra.Command{
		Use:   "json <file>",
		Short: "Print the document tree of a markdown file as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := loadState(cmd, cFlags, args[0])
			if err != nil {
				return err
			}

			var data []byte
			if compact {
				data, err = json.Marshal(state.Snapshot())
			} else {
				data, err = json.MarshalIndent(state.Snapshot(), "", "  ")
			}
			if err != nil {
				return errors.Wrap(err, "failed to marshal document")
			}

			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return errors.Wrap(err, "failed to write result")
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "Print JSON without indentation.")

	return &cmd
}
