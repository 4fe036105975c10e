package catalog

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"source-manager/feature/datasource/models"

	"github.com/spf13/afero"
)

const (
	// LaunchBoxMarker is the file that identifies a LaunchBox library, relative to its root.
	LaunchBoxMarker = "Data/Platforms.xml"
	// EmulationStationMarker is the file name searched for under an EmulationStation library.
	EmulationStationMarker = "es_systems.cfg"
	// DefaultMarkerDepth bounds the recursive EmulationStation marker search.
	DefaultMarkerDepth = 8
)

var errFound = errors.New("marker found")

// Catalog is one supported library layout.
type Catalog interface {
	// Type returns the record type this catalog handles.
	Type() models.Type

	// Detect reports whether root holds a library of this layout.
	// Unreadable or missing paths report false.
	Detect(ctx context.Context, fsys afero.Fs, root string) bool
}

// LaunchBox detects LaunchBox libraries by their platform list.
type LaunchBox struct{}

// Type implements Catalog.
func (LaunchBox) Type() models.Type { return models.TypeLaunchBox }

// Detect implements Catalog.
func (LaunchBox) Detect(ctx context.Context, fsys afero.Fs, root string) bool {
	if ctx.Err() != nil {
		return false
	}
	info, err := fsys.Stat(filepath.Join(root, filepath.FromSlash(LaunchBoxMarker)))
	return err == nil && !info.IsDir()
}

// EmulationStation detects EmulationStation libraries by searching for es_systems.cfg.
type EmulationStation struct {
	// MaxDepth is the number of directory levels below root to search.
	MaxDepth int
}

// Type implements Catalog.
func (EmulationStation) Type() models.Type { return models.TypeEmulationStation }

// Detect implements Catalog.
func (e EmulationStation) Detect(ctx context.Context, fsys afero.Fs, root string) bool {
	depth := e.MaxDepth
	if depth <= 0 {
		depth = DefaultMarkerDepth
	}

	info, err := fsys.Stat(root)
	if err != nil || !info.IsDir() {
		return false
	}

	base := strings.Count(filepath.Clean(root), string(filepath.Separator))
	err = afero.Walk(fsys, root, func(path string, info fs.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Skip unreadable entries; removable media may vanish mid-walk.
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if strings.Count(filepath.Clean(path), string(filepath.Separator))-base >= depth {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(info.Name(), EmulationStationMarker) {
			return errFound
		}
		return nil
	})
	return errors.Is(err, errFound)
}

// For returns the catalog that handles t.
func For(t models.Type, markerDepth int) (Catalog, bool) {
	switch t {
	case models.TypeLaunchBox:
		return LaunchBox{}, true
	case models.TypeEmulationStation:
		return EmulationStation{MaxDepth: markerDepth}, true
	default:
		return nil, false
	}
}

// Classify probes root against every catalog in priority order and returns the first match.
// LaunchBox is checked first because its marker is a single stat.
func Classify(ctx context.Context, fsys afero.Fs, root string, markerDepth int) (Catalog, bool) {
	for _, c := range []Catalog{LaunchBox{}, EmulationStation{MaxDepth: markerDepth}} {
		if c.Detect(ctx, fsys, root) {
			return c, true
		}
	}
	return nil, false
}
