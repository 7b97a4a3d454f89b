package client

import (
	"fmt"

	"github.com/credledger/credledger-go/application"
	"github.com/credledger/credledger-go/crypto/hashers/rfc6962"
	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/utils"
)

// LedgerConfig describes one audited ledger: its identifier, the
// tree hashing strategy the client builds the ledger's tree with, and
// the path to the pinned checkpoint file together with the checkpoint
// and hash id parsed from it.
type LedgerConfig struct {
	ID                 string `toml:"id"`
	Hash               string `toml:"hash"`
	InitCheckpointPath string `toml:"init_checkpoint_path"`

	InitCheckpoint merkletree.Checkpoint `toml:"-"`
	// PinnedHash is the hash id recorded in the pinned checkpoint file
	// by the node that published it, if any.
	PinnedHash string `toml:"-"`
}

// Config contains the client's configuration: where to keep its
// database and the ledgers it audits.
type Config struct {
	*application.CommonConfig

	DatabasePath string          `toml:"database_path"`
	Ledgers      []*LedgerConfig `toml:"ledgers"`
}

var _ application.AppConfig = (*Config)(nil)

// NewConfig initializes a new client configuration at the given file
// path, with the given config encoding and database path, logging
// in the development environment.
func NewConfig(file, encoding, dbPath string) *Config {
	logger := &application.LoggerConfig{Environment: "development"}
	return &Config{
		CommonConfig: application.NewCommonConfig(file, encoding, logger),
		DatabasePath: dbPath,
	}
}

// AddLedger adds a ledger to audit. An empty hash means RFC6962-SHA256.
func (conf *Config) AddLedger(id, hash, initCheckpointPath string) {
	if hash == "" {
		hash = rfc6962.SHA256
	}
	conf.Ledgers = append(conf.Ledgers, &LedgerConfig{
		ID:                 id,
		Hash:               hash,
		InitCheckpointPath: initCheckpointPath,
	})
}

// Load initializes a client's configuration from the given file
// using the given encoding.
// It reads each ledger's pinned checkpoint file. A ledger without a
// configured hash uses the one its pin records, or RFC6962-SHA256.
func (conf *Config) Load(file, encoding string) error {
	conf.CommonConfig = application.NewCommonConfig(file, encoding, nil)
	if err := conf.GetLoader().Decode(conf); err != nil {
		return err
	}
	if conf.Logger == nil {
		conf.Logger = &application.LoggerConfig{Environment: "production"}
	}

	seen := make(map[string]bool)
	for _, lc := range conf.Ledgers {
		if lc.ID == "" || seen[lc.ID] {
			return fmt.Errorf("Ledger ids must be unique and non-empty (got %q)", lc.ID)
		}
		seen[lc.ID] = true
		pin, err := application.LoadInitCheckpoint(lc.InitCheckpointPath, file)
		if err != nil {
			return fmt.Errorf("ledger %s: %v", lc.ID, err)
		}
		lc.InitCheckpoint = pin.Checkpoint
		lc.PinnedHash = pin.Hash
		if lc.Hash == "" {
			lc.Hash = pin.Hash
		}
		if lc.Hash == "" {
			lc.Hash = rfc6962.SHA256
		}
	}
	return nil
}

// Save writes a client's configuration.
func (conf *Config) Save() error {
	return conf.GetLoader().Encode(conf)
}

// GetPath returns the client's configuration file path.
func (conf *Config) GetPath() string {
	return conf.Path
}

// GetDatabasePath returns the database path, resolved relative to the
// configuration file.
func (conf *Config) GetDatabasePath() string {
	return utils.ResolvePath(conf.DatabasePath, conf.Path)
}
