package volume

// Config holds configuration for removable volume discovery.
type Config struct {
	// Roots are extra mount points always treated as removable volumes.
	Roots []string `mapstructure:"roots" default:""`
	// MountPrefixes are mount point prefixes that identify removable media.
	MountPrefixes []string `mapstructure:"mount_prefixes" default:"/run/media/,/media/,/mnt/,/Volumes/"`
	// DocumentName is the per-device configuration document file name.
	DocumentName string `mapstructure:"document_name" default:"RetroPass.xml"`
	// MarkerDepth bounds the recursive catalog marker search.
	MarkerDepth int `mapstructure:"marker_depth" default:"8"`
	// Watch enables rescans when devices are attached or detached.
	Watch bool `mapstructure:"watch" default:"true"`
	// DebounceMs collapses bursts of mount events.
	DebounceMs int `mapstructure:"debounce_ms" default:"500"`
}
