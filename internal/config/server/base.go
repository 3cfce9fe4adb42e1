package server

import (
	"fmt"

	"github.com/spf13/viper"
)

type BaseServerConfig struct {
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	Log        LogServerConfig        `mapstructure:"log"        yaml:"log"`
	Metadata   MetadataServerConfig   `mapstructure:"metadata"   yaml:"metadata"`
	Storage    StorageServerConfig    `mapstructure:"storage"    yaml:"storage"`
	Reconciler ReconcilerServerConfig `mapstructure:"reconciler" yaml:"reconciler"`
}

func LoadServerConfig() (*BaseServerConfig, error) {
	cfg := &BaseServerConfig{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if cfg.Storage.Root == "" {
		return nil, fmt.Errorf("storage.root is required")
	}

	return cfg, nil
}
