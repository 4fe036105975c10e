package datasource

import (
	"context"
	"path/filepath"
	"strings"

	"source-manager/core/utils"
	"source-manager/feature/datasource/catalog"
	"source-manager/feature/datasource/models"

	"github.com/spf13/afero"
)

// Validator decides whether a path can become a new data source.
type Validator struct {
	fs          afero.Fs
	markerDepth int
}

// NewValidator creates a validator probing fsys.
func NewValidator(fsys afero.Fs, markerDepth int) *Validator {
	return &Validator{fs: fsys, markerDepth: markerDepth}
}

// Validate classifies path against the known catalogs and checks it against the registry.
// Issues are advisory except IssueUnknownType, which comes without a candidate.
// mounts are the known volume mount points used to compute the relative path.
func (v *Validator) Validate(ctx context.Context, reg *Registry, mounts []string, path string) models.ValidationReport {
	report := models.ValidationReport{Issues: []models.ValidationIssue{}}

	if strings.TrimSpace(path) == "" {
		report.Issues = append(report.Issues, models.IssueUnknownType)
		return report
	}
	root := filepath.Clean(utils.FromAnySlash(path))
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	if _, ok := reg.FindByRoot(root); ok {
		report.Issues = append(report.Issues, models.IssueDuplicatePath)
	}

	c, ok := catalog.Classify(ctx, v.fs, root, v.markerDepth)
	name := utils.BaseName(root)
	// A filesystem root has no name to register the data source under.
	if !ok || name == "" {
		report.Issues = append(report.Issues, models.IssueUnknownType)
		return report
	}

	rel, err := filepath.Rel(utils.VolumeRoot(root, mounts), root)
	if err != nil || rel == "." {
		rel = ""
	}

	candidate := models.DataSource{
		Record: models.Record{
			Type:         c.Type(),
			Name:         name,
			RelativePath: rel,
		},
		RootFolder: root,
		Status:     models.StatusInactive,
	}
	if _, exists := reg.Get(candidate.Name()); exists {
		report.Issues = append(report.Issues, models.IssueDuplicateName)
	}

	report.Candidate = &candidate
	return report
}
