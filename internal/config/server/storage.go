package server

// StorageServerConfig holds the physical storage layout configuration.
// Root is the structured hierarchy; LegacyRoot is the pre-migration
// flat layout, read-only and optional once migration is finished.
type StorageServerConfig struct {
	Root       string `mapstructure:"root"        yaml:"root"`
	LegacyRoot string `mapstructure:"legacy_root" yaml:"legacy_root"`
}

// ReconcilerServerConfig holds the orphan reconciler configuration
type ReconcilerServerConfig struct {
	Interval string `mapstructure:"interval" yaml:"interval"`
	// DeleteOrphanRecords removes records whose file is absent from
	// both stores. Off by default: orphans are reported, not purged.
	DeleteOrphanRecords bool `mapstructure:"delete_orphan_records" yaml:"delete_orphan_records"`
	BatchSize           int  `mapstructure:"batch_size"            yaml:"batch_size"`
}
