package codec

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"regexp"
	"strings"
)

// Schema identifies the generation of a per-device configuration document.
type Schema int

const (
	// SchemaLegacy is the original single-record document without a version marker.
	SchemaLegacy Schema = iota
	// SchemaV1_6 is the versioned multi-record document.
	SchemaV1_6
	// SchemaUnsupported is a versioned document of an unknown version.
	SchemaUnsupported
)

// CurrentVersion is the version written by Encode.
const CurrentVersion = "1.6"

// DefaultLegacyName names legacy records that were written without one.
const DefaultLegacyName = "Removable Storage"

var (
	// ErrMalformedDocument is returned when a document cannot be decoded.
	ErrMalformedDocument = errors.New("malformed configuration document")
	// ErrInvalidRecord is returned for document entries that cannot be used.
	ErrInvalidRecord = errors.New("invalid data source entry")
	// ErrUnsupportedVersion is returned for versioned documents this build cannot read.
	ErrUnsupportedVersion = errors.New("unsupported configuration document version")
)

var versionPattern = regexp.MustCompile(`retropass\s+version\s*=\s*"([\d.]+)"`)

// Sniff inspects raw document bytes and returns their schema and version marker.
// Documents without a marker are legacy.
func Sniff(data []byte) (Schema, string) {
	m := versionPattern.FindSubmatch(data)
	if m == nil {
		return SchemaLegacy, ""
	}
	version := string(m[1])
	if version == CurrentVersion {
		return SchemaV1_6, version
	}
	return SchemaUnsupported, version
}

func (s Schema) String() string {
	switch s {
	case SchemaLegacy:
		return "legacy"
	case SchemaV1_6:
		return "1.6"
	default:
		return "unsupported"
	}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// unmarshal decodes XML written by text writers that declare utf-16 while
// storing UTF-8 bytes. Declared charsets are trusted only as far as that.
func unmarshal(data []byte, v any) error {
	data = bytes.TrimPrefix(data, utf8BOM)
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		switch strings.ToLower(label) {
		case "utf-8", "utf8", "utf-16", "utf16", "us-ascii":
			return input, nil
		default:
			return nil, errors.New("unsupported charset " + label)
		}
	}
	return dec.Decode(v)
}
