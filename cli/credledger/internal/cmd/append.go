package cmd

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var appendCmd = &cobra.Command{
	Use:   "append <payload>...",
	Short: "Append transactions to the ledger.",
	Long: `Append each argument as a transaction payload, in order.
An argument of "-" appends the contents of stdin.`,
	Args: cobra.MinimumNArgs(1),
	RunE: appendTransactions,
}

func init() {
	RootCmd.AddCommand(appendCmd)
}

func appendTransactions(cmd *cobra.Command, args []string) error {
	payloads := make([][]byte, 0, len(args))
	for _, arg := range args {
		if arg != "-" {
			payloads = append(payloads, []byte(arg))
			continue
		}
		p, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		payloads = append(payloads, p)
	}

	n, logger, err := openNode(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer n.Close()

	cp, err := n.Append(payloads...)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "size=%d\troot=%s\n",
		cp.TreeSize, hex.EncodeToString(cp.RootHash))
	return nil
}
