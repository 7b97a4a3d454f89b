package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/credledger/credledger-go/application/client"
	"github.com/credledger/credledger-go/cli"
	"github.com/credledger/credledger-go/crypto/hashers/rfc6962"
	"github.com/credledger/credledger-go/storage/kv/leveldbkv"
	"github.com/spf13/cobra"
)

var initCmd = cli.NewInitCommand("credauditor", mkConfig)

func init() {
	RootCmd.AddCommand(initCmd)
	initCmd.Flags().String("ledger", "sovrin-main-domain", "Identifier of the audited ledger")
	initCmd.Flags().String("hash", rfc6962.SHA256, "Tree hashing strategy of the ledger network")
	initCmd.Flags().String("checkpoint", "genesis_checkpoint.json",
		"Path of the pinned checkpoint, relative to the config file")
}

func mkConfig(cmd *cobra.Command, args []string) error {
	dir := cmd.Flag("dir").Value.String()
	file := filepath.Join(dir, "config.toml")

	hash := cmd.Flag("hash").Value.String()
	if err := cli.CheckHash(hash); err != nil {
		return err
	}

	conf := client.NewConfig(file, "toml", "ledgers.db")
	conf.AddLedger(cmd.Flag("ledger").Value.String(), hash,
		cmd.Flag("checkpoint").Value.String())
	if err := conf.Save(); err != nil {
		return fmt.Errorf("Couldn't save config. Error message: [%v]", err)
	}
	db, err := leveldbkv.OpenDB(conf.GetDatabasePath())
	if err != nil {
		return err
	}
	if err := db.Close(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", file)
	return nil
}
