package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/credledger/credledger-go/application/node"
	"github.com/credledger/credledger-go/cli"
	"github.com/credledger/credledger-go/crypto/hashers/rfc6962"
	"github.com/spf13/cobra"
)

var initCmd = cli.NewInitCommand("credledger", mkConfig)

func init() {
	RootCmd.AddCommand(initCmd)
	initCmd.Flags().String("ledger", "sovrin-main-domain", "Identifier of the ledger")
	initCmd.Flags().String("hash", rfc6962.SHA256, "Tree hashing strategy of the ledger network")
	initCmd.Flags().Uint64("snapshot-every", 64,
		"Number of appended transactions between compact tree snapshots")
}

func mkConfig(cmd *cobra.Command, args []string) error {
	dir := cmd.Flag("dir").Value.String()
	file := filepath.Join(dir, "config.toml")

	hash := cmd.Flag("hash").Value.String()
	if err := cli.CheckHash(hash); err != nil {
		return err
	}

	conf := node.NewConfig(file, "toml", cmd.Flag("ledger").Value.String(), "ledger.db")
	conf.Hash = hash
	every, err := strconv.ParseUint(cmd.Flag("snapshot-every").Value.String(), 10, 64)
	if err != nil {
		return err
	}
	conf.SnapshotEvery = every
	if err := conf.Save(); err != nil {
		return fmt.Errorf("Couldn't save config. Error message: [%v]", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", file)
	return nil
}
