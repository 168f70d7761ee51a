package config

// Config represents the core gedbridge configuration
type Config struct {
	Store   StoreConfig   `mapstructure:"store"`
	Source  SourceConfig  `mapstructure:"source"`
	Mapping MappingConfig `mapstructure:"mapping"`
	Match   MatchConfig   `mapstructure:"match"`
	Inject  InjectConfig  `mapstructure:"inject"`
}

// StoreConfig configures the flat record store
type StoreConfig struct {
	Path             string   `mapstructure:"path"`              // SQLite store path
	GuardedProcesses []string `mapstructure:"guarded_processes"` // Process names that must not be running during a write
}

// SourceConfig configures the hierarchical source tree input
type SourceConfig struct {
	Path string `mapstructure:"path"` // GEDCOM file path
}

// MappingConfig configures the tag/role mapping collaborator
type MappingConfig struct {
	Path string `mapstructure:"path"` // TOML mapping file path
}

// MatchConfig configures date proximity comparison during event matching
type MatchConfig struct {
	NarrowTolerance int `mapstructure:"narrow_tolerance"` // Years, when the event type is known (default: 1)
	WideTolerance   int `mapstructure:"wide_tolerance"`   // Years, when matching across all event types (default: 5)
}

// InjectConfig configures the injection engines
type InjectConfig struct {
	Languages []string `mapstructure:"languages"` // Languages to generate phrases for (default: ENGLISH, FRENCH)
}

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)
