package cmd

import (
	"fmt"

	"github.com/credledger/credledger-go/cli"
	"github.com/credledger/credledger-go/protocol"
	"github.com/spf13/cobra"
)

var verifyCmd = cli.NewMessageCommand("verify",
	"Verify a transaction reply.",
	`Verify that the transaction in a node reply (JSON) is part of the
ledger, against the ledger's trusted checkpoint.`,
	verifyReply)

func init() {
	RootCmd.AddCommand(verifyCmd)
}

func verifyReply(cmd *cobra.Command, msg []byte) error {
	r, err := protocol.UnmarshalReply(msg)
	if err != nil {
		return err
	}
	c, logger, err := openClient(cmd, false)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer c.Close()

	if err := c.VerifyReply(r); err != nil {
		return fmt.Errorf("Rejected reply for %s seqNo %d: %v", r.LedgerID, r.SeqNo, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: transaction %d verified at tree size %d\n",
		r.LedgerID, r.SeqNo, r.TreeSize)
	return nil
}
