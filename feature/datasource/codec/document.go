package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"source-manager/core/utils"
	"source-manager/feature/datasource/models"
)

// recordXML is the element shape shared by every schema generation.
type recordXML struct {
	Type         string `xml:"type"`
	Name         string `xml:"name,omitempty"`
	RelativePath string `xml:"relativePath"`
}

type documentV1_6 struct {
	XMLName     xml.Name    `xml:"retropass"`
	Version     string      `xml:"version,attr"`
	DataSources []recordXML `xml:"dataSources>dataSource"`
}

// legacyDocument accepts any root element; early builds wrote <RetroPassConfig>.
type legacyDocument struct {
	XMLName xml.Name
	recordXML
}

// DecodeDocument decodes a per-device configuration document of any supported schema.
// Entries of a versioned document that fail validation are skipped; the valid ones are
// returned together with an error wrapping ErrInvalidRecord.
func DecodeDocument(data []byte) ([]models.Record, error) {
	schema, version := Sniff(data)

	switch schema {
	case SchemaV1_6:
		return decodeV1_6(data)
	case SchemaLegacy:
		return decodeLegacy(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}
}

func decodeV1_6(data []byte) ([]models.Record, error) {
	var doc documentV1_6
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	records := make([]models.Record, 0, len(doc.DataSources))
	var errs []error
	for i, r := range doc.DataSources {
		rec, err := r.toRecord()
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: entry %d: %v", ErrInvalidRecord, i+1, err))
			continue
		}
		records = append(records, rec)
	}
	return records, errors.Join(errs...)
}

func decodeLegacy(data []byte) ([]models.Record, error) {
	var doc legacyDocument
	if err := unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if strings.TrimSpace(doc.Name) == "" {
		doc.Name = DefaultLegacyName
	}

	rec, err := doc.recordXML.toRecord()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return []models.Record{rec}, nil
}

func (r recordXML) toRecord() (models.Record, error) {
	t, err := models.ParseType(strings.TrimSpace(r.Type))
	if err != nil {
		return models.Record{}, err
	}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return models.Record{}, models.ErrEmptyName
	}
	return models.Record{
		Type:         t,
		Name:         name,
		RelativePath: utils.FromAnySlash(strings.TrimSpace(r.RelativePath)),
	}, nil
}

func fromRecord(r models.Record) recordXML {
	return recordXML{
		Type:         string(r.Type),
		Name:         r.Name,
		RelativePath: r.RelativePath,
	}
}

// EncodeDocument encodes records as a versioned document. Only the current schema is written.
func EncodeDocument(records []models.Record) ([]byte, error) {
	doc := documentV1_6{
		Version:     CurrentVersion,
		DataSources: make([]recordXML, 0, len(records)),
	}
	for _, r := range records {
		doc.DataSources = append(doc.DataSources, fromRecord(r))
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode configuration document: %w", err)
	}
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// ResolveRoot returns the absolute library root of a record found in a document
// stored at the root of volume.
func ResolveRoot(volume string, r models.Record) string {
	root := filepath.Join(volume, utils.FromAnySlash(r.RelativePath))
	if abs, err := filepath.Abs(root); err == nil {
		return abs
	}
	return root
}
