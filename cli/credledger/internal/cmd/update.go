package cmd

import (
	"fmt"

	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/protocol"
	"github.com/credledger/credledger-go/utils"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Print a checkpoint update.",
	Long: `Print the ledger's latest checkpoint together with a proof that
it extends the tree of --from transactions, as JSON.

With --proof-out, the consistency proof is also written to a file in
its binary encoding.`,
	Args: cobra.NoArgs,
	RunE: printUpdate,
}

func init() {
	RootCmd.AddCommand(updateCmd)
	updateCmd.Flags().Uint64("from", 0, "Size of the tree the client trusts")
	updateCmd.Flags().String("proof-out", "", "File to write the binary consistency proof to")
}

func printUpdate(cmd *cobra.Command, args []string) error {
	from, err := cmd.Flags().GetUint64("from")
	if err != nil {
		return err
	}
	n, logger, err := openNode(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer n.Close()

	u, err := n.CheckpointUpdate(from)
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("proof-out"); out != "" {
		if err := utils.WriteFile(out, merkletree.EncodeConsistencyProof(u.Proof), 0644); err != nil {
			return err
		}
	}
	msg, err := protocol.MarshalCheckpointUpdate(u)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(msg))
	return nil
}
