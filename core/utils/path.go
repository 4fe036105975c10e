package utils

import (
	"path/filepath"
	"runtime"
	"strings"
)

// NormalizePath returns a cleaned absolute form of p suitable for equality checks.
// On case-insensitive platforms the result is lowercased.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}
	p = FromAnySlash(p)
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	p = filepath.Clean(p)
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		p = strings.ToLower(p)
	}
	return p
}

// SamePath reports whether a and b refer to the same location after normalization.
func SamePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return NormalizePath(a) == NormalizePath(b)
}

// FromAnySlash converts both '\' and '/' separators to the host separator.
// Documents written on another platform may use either.
func FromAnySlash(p string) string {
	if filepath.Separator == '/' {
		return strings.ReplaceAll(p, `\`, "/")
	}
	return filepath.FromSlash(p)
}

// FilesystemRoot returns the root of the filesystem p lives on ("/" or "C:\").
func FilesystemRoot(p string) string {
	return filepath.VolumeName(p) + string(filepath.Separator)
}

// VolumeRoot returns the longest mount point in mounts that contains p.
// When none matches, the filesystem root is returned.
func VolumeRoot(p string, mounts []string) string {
	clean := filepath.Clean(p)
	best := ""
	for _, m := range mounts {
		if m == "" {
			continue
		}
		mc := filepath.Clean(m)
		if !IsWithin(mc, clean) {
			continue
		}
		if len(mc) > len(best) {
			best = mc
		}
	}
	if best == "" {
		return FilesystemRoot(clean)
	}
	return best
}

// IsWithin reports whether p equals root or lies beneath it.
func IsWithin(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// BaseName returns the final path segment of p, ignoring trailing separators.
func BaseName(p string) string {
	p = strings.TrimRight(filepath.Clean(p), string(filepath.Separator))
	if p == "" {
		return ""
	}
	return filepath.Base(p)
}
