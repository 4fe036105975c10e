package settings

// Config holds configuration for the process-wide settings store.
type Config struct {
	// Backend selects where settings live (file, database, object).
	Backend string `mapstructure:"backend" default:"file"`
	// Path is the settings file used by the file backend.
	Path string `mapstructure:"path" default:".source-manager/settings.yml"`
	// ObjectPrefix is the key prefix used by the object backend.
	ObjectPrefix string `mapstructure:"object_prefix" default:"settings/"`
}

const (
	BackendFile     = "file"
	BackendDatabase = "database"
	BackendObject   = "object"
)
