package utils

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVolumeRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	mounts := []string{"/media/usb", "/media/usb/nested", "/run/media/user/DISK"}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"Direct child", "/media/usb/Games/LaunchBox", "/media/usb"},
		{"Longest match wins", "/media/usb/nested/ES", "/media/usb/nested"},
		{"Mount point itself", "/run/media/user/DISK", "/run/media/user/DISK"},
		{"Sibling prefix is not a match", "/media/usb2/Games", "/"},
		{"No mount", "/home/user/Games", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VolumeRoot(tt.path, mounts))
		})
	}
}

func TestFromAnySlash(t *testing.T) {
	got := FromAnySlash(`Games\LaunchBox`)
	assert.Equal(t, filepath.Join("Games", "LaunchBox"), got)
}

func TestSamePath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	assert.True(t, SamePath("/media/usb/Games/", "/media/usb/Games"))
	assert.True(t, SamePath("/media/usb/./Games", "/media/usb/Games"))
	assert.False(t, SamePath("/media/usb/Games", "/media/usb/Other"))
	assert.False(t, SamePath("", "/media/usb"))
}

func TestBaseName(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	assert.Equal(t, "LaunchBox", BaseName("/media/usb/LaunchBox/"))
	assert.Equal(t, "usb", BaseName("/media/usb"))
}
