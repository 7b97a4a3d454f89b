package node

import (
	"fmt"

	"github.com/credledger/credledger-go/application"
	"github.com/credledger/credledger-go/crypto/hashers/rfc6962"
	"github.com/credledger/credledger-go/utils"
)

// A Config contains configuration values
// which are read at initialization time from
// a TOML format configuration file.
type Config struct {
	*application.CommonConfig

	// LedgerID identifies the ledger the node keeps.
	LedgerID string `toml:"ledger_id"`
	// Hash is the tree hashing strategy of the ledger network.
	Hash string `toml:"hash"`
	// DatabasePath is the leveldb directory holding the ledger,
	// relative to the config file.
	DatabasePath string `toml:"database_path"`
	// SnapshotEvery is the number of appended transactions after
	// which the compact tree is snapshotted. 0 snapshots on every
	// append and on Close.
	SnapshotEvery uint64 `toml:"snapshot_every"`
}

var _ application.AppConfig = (*Config)(nil)

// NewConfig initializes a new node configuration at the given file
// path, with the given config encoding, keeping the ledger id in dbPath
// and logging in the development environment.
func NewConfig(file, encoding, id, dbPath string) *Config {
	logger := &application.LoggerConfig{Environment: "development"}
	return &Config{
		CommonConfig:  application.NewCommonConfig(file, encoding, logger),
		LedgerID:      id,
		Hash:          rfc6962.SHA256,
		DatabasePath:  dbPath,
		SnapshotEvery: 64,
	}
}

// Load initializes a node's configuration from the given file
// using the given encoding.
func (conf *Config) Load(file, encoding string) error {
	conf.CommonConfig = application.NewCommonConfig(file, encoding, nil)
	if err := conf.GetLoader().Decode(conf); err != nil {
		return err
	}
	if conf.LedgerID == "" {
		return fmt.Errorf("Config %s has no ledger_id", file)
	}
	if conf.Hash == "" {
		conf.Hash = rfc6962.SHA256
	}
	if conf.Logger == nil {
		conf.Logger = &application.LoggerConfig{Environment: "production"}
	}
	return nil
}

// Save writes a node's configuration.
func (conf *Config) Save() error {
	return conf.GetLoader().Encode(conf)
}

// GetPath returns the node's configuration file path.
func (conf *Config) GetPath() string {
	return conf.Path
}

// GetDatabasePath returns the database path, resolved relative to the
// configuration file.
func (conf *Config) GetDatabasePath() string {
	return utils.ResolvePath(conf.DatabasePath, conf.Path)
}
