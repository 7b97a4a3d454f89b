package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/credledger/credledger-go/cli"
	"github.com/credledger/credledger-go/protocol"
	"github.com/spf13/cobra"
)

var updateCmd = cli.NewMessageCommand("update",
	"Apply a checkpoint update.",
	`Verify a checkpoint update (JSON) against the ledger's trusted
checkpoint and trust the new checkpoint if its consistency proof holds.`,
	applyUpdate)

func init() {
	RootCmd.AddCommand(updateCmd)
}

func applyUpdate(cmd *cobra.Command, msg []byte) error {
	u, err := protocol.UnmarshalCheckpointUpdate(msg)
	if err != nil {
		return err
	}
	c, logger, err := openClient(cmd, false)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer c.Close()

	if err := c.UpdateCheckpoint(u); err != nil {
		return fmt.Errorf("Rejected checkpoint update for %s: %v", u.LedgerID, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: trusted checkpoint size=%d root=%s\n",
		u.LedgerID, u.Checkpoint.TreeSize, hex.EncodeToString(u.Checkpoint.RootHash))
	return nil
}
