package cmd

import (
	"fmt"
	"strconv"

	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/protocol"
	"github.com/credledger/credledger-go/utils"
	"github.com/spf13/cobra"
)

var replyCmd = &cobra.Command{
	Use:   "reply <seqNo>",
	Short: "Print a transaction reply.",
	Long: `Print the reply to a read of transaction seqNo as JSON: its payload
and audit path against the latest tree. With --since, the reply also
proves that the latest tree extends the tree of that many transactions;
--since 0 proves it extends the empty tree.

With --proof-out, the audit proof is also written to a file in its
binary encoding.`,
	Args: cobra.ExactArgs(1),
	RunE: printReply,
}

func init() {
	RootCmd.AddCommand(replyCmd)
	replyCmd.Flags().Uint64("since", 0, "Size of the tree the client trusts")
	replyCmd.Flags().String("proof-out", "", "File to write the binary audit proof to")
}

func printReply(cmd *cobra.Command, args []string) error {
	seqNo, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("Invalid seqNo %q: %v", args[0], err)
	}
	since, err := cmd.Flags().GetUint64("since")
	if err != nil {
		return err
	}
	n, logger, err := openNode(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer n.Close()

	var r *protocol.Reply
	if cmd.Flags().Changed("since") {
		r, err = n.ReplySince(seqNo, since)
	} else {
		r, err = n.Reply(seqNo)
	}
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("proof-out"); out != "" {
		proof := &merkletree.AuditProof{LeafIndex: r.SeqNo - 1, TreeSize: r.TreeSize, Path: r.AuditPath}
		if err := utils.WriteFile(out, merkletree.EncodeAuditProof(proof), 0644); err != nil {
			return err
		}
	}
	msg, err := protocol.MarshalReply(r)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(msg))
	return nil
}
