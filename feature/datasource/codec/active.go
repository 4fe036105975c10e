package codec

import (
	"encoding/xml"
	"fmt"
	"strings"

	"source-manager/feature/datasource/models"
)

type activeSet struct {
	XMLName xml.Name    `xml:"ArrayOfRetroPassConfig"`
	Records []recordXML `xml:"RetroPassConfig"`
}

// EncodeActiveSet serializes the persisted active set.
func EncodeActiveSet(records []models.Record) (string, error) {
	set := activeSet{Records: make([]recordXML, 0, len(records))}
	for _, r := range records {
		set.Records = append(set.Records, fromRecord(r))
	}

	data, err := xml.Marshal(set)
	if err != nil {
		return "", fmt.Errorf("failed to encode active set: %w", err)
	}
	return xml.Header + string(data), nil
}

// DecodeActiveSet parses a persisted active set. An empty blob is an empty set.
func DecodeActiveSet(blob string) ([]models.Record, error) {
	if strings.TrimSpace(blob) == "" {
		return nil, nil
	}

	var set activeSet
	if err := unmarshal([]byte(blob), &set); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	records := make([]models.Record, 0, len(set.Records))
	for _, r := range set.Records {
		rec, err := r.toRecord()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
		records = append(records, rec)
	}
	return records, nil
}
