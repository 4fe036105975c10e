package codec

import (
	"path/filepath"
	"runtime"
	"testing"

	"source-manager/feature/datasource/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyNoName = `<?xml version="1.0" encoding="utf-16"?>
<RetroPassConfig xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema">
  <type>LaunchBox</type>
  <relativePath>Games\LaunchBox</relativePath>
</RetroPassConfig>`

const legacyNamed = `<RetroPassConfig>
  <type>EmulationStation</type>
  <relativePath>ES</relativePath>
  <name>Arcade</name>
</RetroPassConfig>`

const versioned = `<?xml version="1.0" encoding="utf-8"?>
<retropass version="1.6">
  <dataSources>
    <dataSource>
      <type>LaunchBox</type>
      <name>LaunchBox</name>
      <relativePath>Games\LaunchBox</relativePath>
    </dataSource>
    <dataSource>
      <type>EmulationStation</type>
      <name>Retro</name>
      <relativePath>Retro</relativePath>
    </dataSource>
  </dataSources>
</retropass>`

func TestSniff(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		wantSchema  Schema
		wantVersion string
	}{
		{"Legacy", legacyNoName, SchemaLegacy, ""},
		{"Versioned", versioned, SchemaV1_6, "1.6"},
		{"Spacing", `<retropass   version = "1.6" >`, SchemaV1_6, "1.6"},
		{"Future", `<retropass version="2.0"><dataSources/></retropass>`, SchemaUnsupported, "2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, version := Sniff([]byte(tt.data))
			assert.Equal(t, tt.wantSchema, schema)
			assert.Equal(t, tt.wantVersion, version)
		})
	}
}

func TestDecodeDocument_LegacyDefaultName(t *testing.T) {
	records, err := DecodeDocument([]byte(legacyNoName))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, DefaultLegacyName, records[0].Name)
	assert.Equal(t, "Removable Storage", records[0].Name)
	assert.Equal(t, models.TypeLaunchBox, records[0].Type)
	assert.Equal(t, filepath.Join("Games", "LaunchBox"), records[0].RelativePath)
}

func TestDecodeDocument_LegacyNamed(t *testing.T) {
	records, err := DecodeDocument([]byte(legacyNamed))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Arcade", records[0].Name)
	assert.Equal(t, models.TypeEmulationStation, records[0].Type)
}

func TestDecodeDocument_Versioned(t *testing.T) {
	records, err := DecodeDocument([]byte(versioned))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "LaunchBox", records[0].Name)
	assert.Equal(t, "Retro", records[1].Name)
	assert.Equal(t, models.TypeEmulationStation, records[1].Type)
}

func TestDecodeDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"Garbage", "not xml at all", ErrMalformedDocument},
		{"Truncated", `<retropass version="1.6"><dataSources><dataSource>`, ErrMalformedDocument},
		{"UnknownType", `<RetroPassConfig><type>Steam</type><relativePath>x</relativePath></RetroPassConfig>`, ErrMalformedDocument},
		{"UnsupportedVersion", `<retropass version="2.0"></retropass>`, ErrUnsupportedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeDocument_SkipsInvalidEntries(t *testing.T) {
	data := `<retropass version="1.6"><dataSources>
  <dataSource><type>Steam</type><name>Bad</name><relativePath>Bad</relativePath></dataSource>
  <dataSource><type>LaunchBox</type><name>Foo</name><relativePath>Foo</relativePath></dataSource>
  <dataSource><type>LaunchBox</type><relativePath>NoName</relativePath></dataSource>
</dataSources></retropass>`

	records, err := DecodeDocument([]byte(data))
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.NotErrorIs(t, err, ErrMalformedDocument)
	require.Len(t, records, 1)
	assert.Equal(t, "Foo", records[0].Name)
	assert.Contains(t, err.Error(), "entry 1")
	assert.Contains(t, err.Error(), "entry 3")
}

func TestEncodeDocument_WritesVersionedSchema(t *testing.T) {
	records := []models.Record{
		{Type: models.TypeLaunchBox, Name: "Foo", RelativePath: "Foo"},
		{Type: models.TypeEmulationStation, Name: "Bar", RelativePath: filepath.Join("Games", "Bar")},
	}

	data, err := EncodeDocument(records)
	require.NoError(t, err)

	schema, version := Sniff(data)
	assert.Equal(t, SchemaV1_6, schema)
	assert.Equal(t, CurrentVersion, version)

	decoded, err := DecodeDocument(data)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestActiveSet(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		records, err := DecodeActiveSet("")
		assert.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		in := []models.Record{{Type: models.TypeLaunchBox, Name: "Foo", RelativePath: "Foo"}}
		blob, err := EncodeActiveSet(in)
		require.NoError(t, err)
		assert.Contains(t, blob, "<ArrayOfRetroPassConfig>")

		out, err := DecodeActiveSet(blob)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := DecodeActiveSet("<ArrayOfRetroPassConfig><RetroPassConfig>")
		assert.ErrorIs(t, err, ErrMalformedDocument)
	})
}

func TestResolveRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}
	got := ResolveRoot("/media/usb", models.Record{RelativePath: `Games\LaunchBox`})
	assert.Equal(t, "/media/usb/Games/LaunchBox", got)
}
