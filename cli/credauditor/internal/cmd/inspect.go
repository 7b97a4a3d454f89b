package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/credledger/credledger-go/cli"
	"github.com/credledger/credledger-go/merkletree"
	"github.com/spf13/cobra"
)

var inspectCmd = cli.NewMessageCommand("inspect",
	"Print a binary proof as JSON.",
	`Decode a proof written by "credledger reply --proof-out" (--kind
inclusion) or "credledger update --proof-out" (--kind consistency) and
print it as JSON.`,
	inspectProof)

func init() {
	RootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().String("kind", "inclusion", "Proof kind: inclusion or consistency")
}

func inspectProof(cmd *cobra.Command, msg []byte) error {
	kind, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	var proof interface{}
	switch kind {
	case "inclusion":
		proof, err = merkletree.DecodeAuditProof(msg)
	case "consistency":
		proof, err = merkletree.DecodeConsistencyProof(msg)
	default:
		return fmt.Errorf("Unknown proof kind %q", kind)
	}
	if err != nil {
		return err
	}
	buf, err := json.MarshalIndent(proof, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(buf))
	return nil
}
