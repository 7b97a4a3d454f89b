package cmd

import (
	"github.com/credledger/credledger-go/application"
	"github.com/credledger/credledger-go/application/client"
	"github.com/credledger/credledger-go/cli"
	"github.com/spf13/cobra"
)

// RootCmd represents the base "credauditor" command when called
// without any subcommands (init, update, verify, ...).
var RootCmd = cli.NewRootCommand("credauditor",
	"Credential ledger auditor",
	`credauditor keeps a trusted checkpoint of each configured ledger.
It accepts a newer checkpoint only with a proof that it extends the
trusted one, and verifies transaction replies against it.`)

func init() {
	RootCmd.AddCommand(cli.NewVersionCommand("credauditor"))
}

// openClient loads the configuration named by the "config" flag and
// opens the client it describes, read-only if readOnly is set.
func openClient(cmd *cobra.Command, readOnly bool) (*client.Client, *application.Logger, error) {
	conf := new(client.Config)
	if err := conf.Load(cmd.Flag("config").Value.String(), "toml"); err != nil {
		return nil, nil, err
	}
	logger, err := application.NewLogger(conf.Logger)
	if err != nil {
		return nil, nil, err
	}
	open := client.New
	if readOnly {
		open = client.NewReadOnly
	}
	c, err := open(conf, logger)
	if err != nil {
		return nil, nil, err
	}
	return c, logger, nil
}
