package datasource

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"source-manager/feature/datasource/codec"
	"source-manager/feature/datasource/models"

	"github.com/spf13/afero"
)

// DocumentStore reads and writes the per-volume configuration document.
type DocumentStore struct {
	fs   afero.Fs
	name string
}

// NewDocumentStore creates a store for documents called name at each volume root.
func NewDocumentStore(fsys afero.Fs, name string) *DocumentStore {
	if name == "" {
		name = "RetroPass.xml"
	}
	return &DocumentStore{fs: fsys, name: name}
}

// Path returns the document location on volume.
func (s *DocumentStore) Path(volume string) string {
	return filepath.Join(volume, s.name)
}

// Read returns the records listed on volume. found is false when the volume has no document.
// When some entries are invalid the usable records are returned along with an
// error wrapping codec.ErrInvalidRecord.
func (s *DocumentStore) Read(volume string) (records []models.Record, found bool, err error) {
	data, err := afero.ReadFile(s.fs, s.Path(volume))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", s.Path(volume), err)
	}

	records, err = codec.DecodeDocument(data)
	if err != nil {
		if errors.Is(err, codec.ErrInvalidRecord) {
			return records, true, fmt.Errorf("%s: %w", s.Path(volume), err)
		}
		return nil, true, fmt.Errorf("%s: %w", s.Path(volume), err)
	}
	return records, true, nil
}

// Upsert adds rec to the document on volume, creating the document when missing.
// An entry with the same name is replaced in place. The document is always
// rewritten in the current schema, so documents with invalid entries are refused.
func (s *DocumentStore) Upsert(volume string, rec models.Record) error {
	records, _, err := s.Read(volume)
	if err != nil {
		return err
	}

	replaced := false
	for i := range records {
		if records[i].Name == rec.Name {
			records[i] = rec
			replaced = true
			break
		}
	}
	if !replaced {
		records = append(records, rec)
	}

	data, err := codec.EncodeDocument(records)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, s.Path(volume), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path(volume), err)
	}
	return nil
}
