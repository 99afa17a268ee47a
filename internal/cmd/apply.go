package cmd

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateful/marknote/pkg/document"
)

func applyCmd(cFlags *commonFlags) *cobra.Command {
	var (
		txPath string
		write  bool
	)

	cmd := cobra.Command{
		Use:   "apply --tx <tx.json> <file>",
		Short: "Apply a JSON transaction to a markdown file.",
		Long: `Apply reads a transaction, a JSON array of operations such as

  [{"op": "delete", "path": [0]}, {"op": "move", "from": [0], "to": [2]}]

and applies it atomically to the document. Nothing is written if any
operation fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if write && args[0] == stdinName {
				return errors.New("cannot write stdin in place")
			}

			data, err := readSource(cmd, txPath)
			if err != nil {
				return err
			}
			var tx document.Transaction
			if err := json.Unmarshal(data, &tx); err != nil {
				return errors.Wrapf(err, "failed to parse transaction %q", txPath)
			}

			state, err := loadState(cmd, cFlags, args[0])
			if err != nil {
				return err
			}
			if err := state.Apply(&tx); err != nil {
				return err
			}

			result := []byte(state.Export())
			if write {
				cFlags.logger.Info("applied transaction", zap.String("name", args[0]), zap.Int("operations", tx.Len()))
				return writeFile(args[0], result)
			}
			_, err = cmd.OutOrStdout().Write(result)
			return errors.Wrap(err, "failed to write result")
		},
	}

	cmd.Flags().StringVar(&txPath, "tx", "", "Path to the transaction file.")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the result to the source file instead of stdout.")
	_ = cmd.MarkFlagRequired("tx")

	return &cmd
}
