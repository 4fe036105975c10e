package volume

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/shirou/gopsutil/v3/disk"
)

// Volume is a mounted removable storage device.
type Volume struct {
	// MountPoint is the absolute path of the volume root.
	MountPoint string `json:"mount_point"`
	// Device is the OS device path, when known.
	Device string `json:"device,omitempty"`
	// Filesystem is the filesystem type, when known.
	Filesystem string `json:"filesystem,omitempty"`
}

// Scanner enumerates removable volumes.
type Scanner interface {
	// Volumes returns the currently mounted removable volumes sorted by mount point.
	// An enumeration failure yields an empty list and the error.
	Volumes(ctx context.Context) ([]Volume, error)
}

// PartitionLister lists mounted partitions. It matches disk.PartitionsWithContext.
type PartitionLister func(ctx context.Context, all bool) ([]disk.PartitionStat, error)

// SystemScanner discovers removable volumes from the partition table.
type SystemScanner struct {
	cfg  Config
	list PartitionLister
}

// NewSystemScanner creates a scanner backed by gopsutil.
func NewSystemScanner(cfg Config) *SystemScanner {
	return &SystemScanner{cfg: cfg, list: disk.PartitionsWithContext}
}

// NewSystemScannerWithLister creates a scanner with a custom partition source.
func NewSystemScannerWithLister(cfg Config, list PartitionLister) *SystemScanner {
	return &SystemScanner{cfg: cfg, list: list}
}

// Volumes implements Scanner.
func (s *SystemScanner) Volumes(ctx context.Context) ([]Volume, error) {
	seen := make(map[string]struct{})
	volumes := make([]Volume, 0, 8)

	add := func(v Volume) {
		v.MountPoint = filepath.Clean(v.MountPoint)
		if _, ok := seen[v.MountPoint]; ok {
			return
		}
		seen[v.MountPoint] = struct{}{}
		volumes = append(volumes, v)
	}

	for _, root := range s.cfg.Roots {
		if strings.TrimSpace(root) == "" {
			continue
		}
		add(Volume{MountPoint: root})
	}

	partitions, err := s.list(ctx, false)
	if err != nil {
		sortVolumes(volumes)
		return volumes, err
	}

	for _, p := range partitions {
		if !s.isRemovable(p) {
			continue
		}
		add(Volume{MountPoint: p.Mountpoint, Device: p.Device, Filesystem: p.Fstype})
	}

	sortVolumes(volumes)
	return volumes, nil
}

// isRemovable decides whether a partition looks like external media.
func (s *SystemScanner) isRemovable(p disk.PartitionStat) bool {
	if p.Mountpoint == "" || p.Mountpoint == "/" {
		return false
	}

	for _, opt := range p.Opts {
		if strings.EqualFold(opt, "removable") {
			return true
		}
	}

	for _, prefix := range s.cfg.MountPrefixes {
		prefix = strings.TrimSpace(prefix)
		if prefix != "" && strings.HasPrefix(p.Mountpoint, prefix) {
			return true
		}
	}

	// Drive letters other than the system drive are candidates on Windows.
	if runtime.GOOS == "windows" {
		return !strings.EqualFold(filepath.VolumeName(p.Mountpoint), "C:")
	}
	return false
}

// MountPoints returns the mount points of vs.
func MountPoints(vs []Volume) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.MountPoint)
	}
	return out
}

func sortVolumes(vs []Volume) {
	sort.Slice(vs, func(i, j int) bool {
		return vs[i].MountPoint < vs[j].MountPoint
	})
}

// StaticScanner reports a fixed list of volumes. Useful for tests and for
// setups where removable media are mounted at known paths.
type StaticScanner struct {
	Mounts []string
}

// Volumes implements Scanner.
func (s StaticScanner) Volumes(ctx context.Context) ([]Volume, error) {
	vs := make([]Volume, 0, len(s.Mounts))
	for _, m := range s.Mounts {
		vs = append(vs, Volume{MountPoint: filepath.Clean(m)})
	}
	sortVolumes(vs)
	return vs, nil
}
