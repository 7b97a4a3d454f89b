package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Print the trusted checkpoint of each ledger.",
	Args:  cobra.NoArgs,
	RunE:  printCheckpoints,
}

func init() {
	RootCmd.AddCommand(checkpointCmd)
}

func printCheckpoints(cmd *cobra.Command, args []string) error {
	c, logger, err := openClient(cmd, true)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer c.Close()

	for _, id := range c.Ledgers() {
		cp, err := c.Checkpoint(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\tsize=%d\troot=%s\n",
			id, cp.TreeSize, hex.EncodeToString(cp.RootHash))
	}
	return nil
}
