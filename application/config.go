package application

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/credledger/credledger-go/merkletree"
	"github.com/credledger/credledger-go/utils"
)

// AppConfig provides an abstraction of the
// underlying encoding format for the configs.
type AppConfig interface {
	Load(file, encoding string) error
	Save() error
	GetPath() string
}

// CommonConfig is the generic type used to specify the configuration of
// any ledger client executable. It contains the file path, the logger
// configuration, and the config loader.
type CommonConfig struct {
	Path     string        `toml:"-"`
	Logger   *LoggerConfig `toml:"logger"`
	Encoding string        `toml:"-"`
	loader   ConfigLoader
}

// NewCommonConfig initializes an application's config file path,
// its loader for the given encoding, and the logger configuration.
// Note: This constructor must be called in each Load() method
// implementation of an AppConfig.
func NewCommonConfig(file, encoding string, logger *LoggerConfig) *CommonConfig {
	return &CommonConfig{
		Path:     file,
		Logger:   logger,
		Encoding: encoding,
		loader:   newConfigLoader(encoding),
	}
}

// GetLoader returns the config's loader.
func (conf *CommonConfig) GetLoader() ConfigLoader {
	return conf.loader
}

// A PinnedCheckpoint is the content of a pinned checkpoint file: a
// checkpoint and, if the publishing node recorded it, the tree hash id
// of its ledger.
type PinnedCheckpoint struct {
	merkletree.Checkpoint
	Hash string `json:"hash,omitempty"`
}

// LoadInitCheckpoint loads the pinned checkpoint of a ledger at the
// given path, resolved relative to the config file. The checkpoint is
// JSON-encoded, with a base64 root hash.
func LoadInitCheckpoint(path, file string) (*PinnedCheckpoint, error) {
	cpPath := utils.ResolvePath(path, file)
	buf, err := os.ReadFile(cpPath)
	if err != nil {
		return nil, fmt.Errorf("Cannot read init checkpoint: %v", err)
	}
	pin := new(PinnedCheckpoint)
	if err := json.Unmarshal(buf, pin); err != nil {
		return nil, fmt.Errorf("Cannot parse init checkpoint: %v", err)
	}
	if len(pin.RootHash) == 0 {
		return nil, fmt.Errorf("Init checkpoint %s has no root hash", cpPath)
	}
	return pin, nil
}

// SaveCheckpoint writes cp as JSON to path, in the format
// LoadInitCheckpoint reads, recording hash as the ledger's tree hash id
// unless it is empty. It refuses to overwrite an existing file.
func SaveCheckpoint(path, hash string, cp merkletree.Checkpoint) error {
	buf, err := json.MarshalIndent(PinnedCheckpoint{Checkpoint: cp, Hash: hash}, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFile(path, buf, 0644)
}
