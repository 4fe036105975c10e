package models

import (
	"errors"
	"fmt"
)

// Type identifies the catalog layout a data source uses.
type Type string

const (
	// TypeLaunchBox is a LaunchBox library (Data/Platforms.xml).
	TypeLaunchBox Type = "LaunchBox"
	// TypeEmulationStation is an EmulationStation library (es_systems.cfg).
	TypeEmulationStation Type = "EmulationStation"
)

// Valid reports whether t is one of the known catalog types.
func (t Type) Valid() bool {
	switch t {
	case TypeLaunchBox, TypeEmulationStation:
		return true
	default:
		return false
	}
}

// ParseType converts a serialized type name into a Type.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown data source type %q", s)
	}
	return t, nil
}

// Status is the reconciled state of a data source.
type Status string

const (
	// StatusActive means the user opted in and the device is reachable.
	StatusActive Status = "active"
	// StatusInactive means the device is reachable but the user has not opted in.
	StatusInactive Status = "inactive"
	// StatusUnavailable means the user opted in but the device is not reachable.
	StatusUnavailable Status = "unavailable"
)

// ParseStatus converts user input into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusInactive, StatusUnavailable:
		return st, nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// IsOptedIn reports whether the status belongs to the persisted active set.
func (s Status) IsOptedIn() bool {
	return s == StatusActive || s == StatusUnavailable
}

// Record is the persisted description of a data source. Name is its identity.
type Record struct {
	Type         Type   `json:"type" yaml:"type"`
	Name         string `json:"name" yaml:"name"`
	RelativePath string `json:"relative_path" yaml:"relative_path"`
}

// DataSource is the runtime view of a Record.
type DataSource struct {
	Record Record `json:"record"`

	// RootFolder is the absolute path of the library, empty while unreachable.
	RootFolder string `json:"root_folder"`

	Status Status `json:"status"`
}

// Name returns the identity key of the data source.
func (d *DataSource) Name() string {
	return d.Record.Name
}

// Check verifies the status invariants of a data source.
func (d *DataSource) Check() error {
	if d.Record.Name == "" {
		return ErrEmptyName
	}
	if d.Status == StatusActive && d.RootFolder == "" {
		return fmt.Errorf("%s: %w", d.Record.Name, ErrNoRootFolder)
	}
	return nil
}

var (
	// ErrEmptyName is returned for records without a name.
	ErrEmptyName = errors.New("data source name is empty")
	// ErrNoRootFolder is returned when activating a data source that has no reachable root folder.
	ErrNoRootFolder = errors.New("data source has no root folder")
	// ErrDuplicateName is returned when a name is already registered.
	ErrDuplicateName = errors.New("data source name already registered")
	// ErrNotFound is returned when a name is not registered.
	ErrNotFound = errors.New("data source not found")
)

// ValidationIssue is an advisory finding produced while validating a candidate path.
type ValidationIssue string

const (
	// IssueDuplicatePath means another data source already uses the same root folder.
	IssueDuplicatePath ValidationIssue = "DUPLICATE_PATH"
	// IssueUnknownType means the path matches no known catalog layout.
	IssueUnknownType ValidationIssue = "UNKNOWN_DATA_SOURCE_TYPE"
	// IssueDuplicateName means another data source already uses the derived name.
	IssueDuplicateName ValidationIssue = "DUPLICATE_NAME"
)

// ValidationReport is the outcome of validating a candidate path.
type ValidationReport struct {
	Candidate *DataSource       `json:"candidate,omitempty"`
	Issues    []ValidationIssue `json:"issues"`
}

// Has reports whether the report contains the given issue.
func (r ValidationReport) Has(issue ValidationIssue) bool {
	for _, i := range r.Issues {
		if i == issue {
			return true
		}
	}
	return false
}
