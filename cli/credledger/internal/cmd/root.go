package cmd

import (
	"github.com/credledger/credledger-go/application"
	"github.com/credledger/credledger-go/application/node"
	"github.com/credledger/credledger-go/cli"
	"github.com/spf13/cobra"
)

// RootCmd represents the base "credledger" command when called
// without any subcommands (init, append, reply, ...).
var RootCmd = cli.NewRootCommand("credledger",
	"Credential ledger node",
	`credledger keeps an append-only ledger of transactions and answers
with the Merkle proofs a ledger client checks: checkpoint updates
carrying consistency proofs, and transaction replies carrying audit
paths.`)

func init() {
	RootCmd.AddCommand(cli.NewVersionCommand("credledger"))
}

// openNode loads the configuration named by the "config" flag and
// opens the node it describes.
func openNode(cmd *cobra.Command) (*node.Node, *application.Logger, error) {
	conf := new(node.Config)
	if err := conf.Load(cmd.Flag("config").Value.String(), "toml"); err != nil {
		return nil, nil, err
	}
	logger, err := application.NewLogger(conf.Logger)
	if err != nil {
		return nil, nil, err
	}
	n, err := node.New(conf, logger)
	if err != nil {
		return nil, nil, err
	}
	return n, logger, nil
}
