package server

import "github.com/spf13/viper"

func GetServerDefault() BaseServerConfig {
	return BaseServerConfig{
		ShutdownTimeout: "10s",

		Log: LogServerConfig{
			Level:      "INFO",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			NoTerminal: false,
			Rotation: LogServerRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
				Compress:   false,
			},
		},

		Metadata: MetadataServerConfig{
			Type: "sqlite",
			SQLite: MetadataSQLiteConfig{
				Path: "slms.db",
			},
			Postgres: MetadataPostgresConfig{
				MaxOpenConns: 10,
				MaxIdleConns: 5,
			},
		},

		Storage: StorageServerConfig{
			Root:       "",
			LegacyRoot: "",
		},

		Reconciler: ReconcilerServerConfig{
			Interval:            "6h",
			DeleteOrphanRecords: false,
			BatchSize:           200,
		},
	}
}

func setDefaults() {
	defaults := GetServerDefault()

	viper.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.time_format", defaults.Log.TimeFormat)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.no_color", defaults.Log.NoColor)
	viper.SetDefault("log.json", defaults.Log.JSON)
	viper.SetDefault("log.no_terminal", defaults.Log.NoTerminal)
	viper.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	viper.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	viper.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	viper.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)

	viper.SetDefault("metadata.type", defaults.Metadata.Type)
	viper.SetDefault("metadata.sqlite.path", defaults.Metadata.SQLite.Path)
	viper.SetDefault("metadata.postgres.dsn", defaults.Metadata.Postgres.DSN)
	viper.SetDefault("metadata.postgres.max_open_conns", defaults.Metadata.Postgres.MaxOpenConns)
	viper.SetDefault("metadata.postgres.max_idle_conns", defaults.Metadata.Postgres.MaxIdleConns)

	viper.SetDefault("storage.root", defaults.Storage.Root)
	viper.SetDefault("storage.legacy_root", defaults.Storage.LegacyRoot)

	viper.SetDefault("reconciler.interval", defaults.Reconciler.Interval)
	viper.SetDefault("reconciler.delete_orphan_records", defaults.Reconciler.DeleteOrphanRecords)
	viper.SetDefault("reconciler.batch_size", defaults.Reconciler.BatchSize)
}
