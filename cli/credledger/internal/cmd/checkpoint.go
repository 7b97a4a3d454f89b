package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/credledger/credledger-go/application"
	"github.com/spf13/cobra"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Print the ledger's latest checkpoint.",
	Long: `Print the ledger's latest checkpoint and tree hash id as JSON.
With --out, write it to a file instead, in the format credauditor pins.`,
	Args: cobra.NoArgs,
	RunE: printCheckpoint,
}

func init() {
	RootCmd.AddCommand(checkpointCmd)
	checkpointCmd.Flags().StringP("out", "o", "", "File to write the checkpoint to")
}

func printCheckpoint(cmd *cobra.Command, args []string) error {
	n, logger, err := openNode(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer n.Close()

	cp := n.Checkpoint()
	if out := cmd.Flag("out").Value.String(); out != "" {
		if err := application.SaveCheckpoint(out, n.Hash(), cp); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", out)
		return nil
	}
	buf, err := json.Marshal(application.PinnedCheckpoint{Checkpoint: cp, Hash: n.Hash()})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(buf))
	return nil
}
