package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `total_reasons: 3
categories:
  Work:
    count: 2
    reasons:
      - Too busy
      - Not my job
  Life:
    count: 1
    reasons:
      - I'm tired
`

func TestParseYAML_KeepsOrder(t *testing.T) {
	c, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"Work", "Life"}, c.Categories())
	assert.Equal(t, 3, c.Total())
	assert.Equal(t, []string{"Too busy"}, c.Filter("too", All))
}

func TestEncode_PreservesOrder(t *testing.T) {
	c, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			out, err := Encode(c.Document(), format)
			require.NoError(t, err)

			again, err := Parse(out, format)
			require.NoError(t, err)
			assert.Equal(t, c.Categories(), again.Categories())
			assert.Equal(t, c.Filter("", All), again.Filter("", All))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"count mismatch", `{"total_reasons":1,"categories":{"A":{"count":2,"reasons":["x"]}}}`},
		{"total mismatch", `{"total_reasons":5,"categories":{"A":{"count":1,"reasons":["x"]}}}`},
		{"empty reason", `{"total_reasons":1,"categories":{"A":{"count":1,"reasons":[""]}}}`},
		{"empty category name", `{"total_reasons":1,"categories":{"":{"count":1,"reasons":["x"]}}}`},
		{"negative count", `{"total_reasons":0,"categories":{"A":{"count":-1,"reasons":[]}}}`},
		{"reserved category name", `{"total_reasons":1,"categories":{"All":{"count":1,"reasons":["x"]}}}`},
		{"duplicate category", `{"total_reasons":2,"categories":{"A":{"count":1,"reasons":["x"]},"A":{"count":1,"reasons":["y"]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatJSON)
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"total_reasons":1,"categories":[]}`), FormatJSON)
	assert.Error(t, err)

	_, err = Parse([]byte("categories: [a, b]"), FormatYAML)
	assert.Error(t, err)

	_, err = Parse([]byte(`{}`), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestParse_EmptyCatalog(t *testing.T) {
	c, err := Parse([]byte(`{"total_reasons":0,"categories":{}}`), FormatJSON)
	require.NoError(t, err)

	assert.Empty(t, c.Categories())
	assert.Empty(t, c.Filter("", All))
	_, ok := c.PickRandom(All, nil)
	assert.False(t, ok)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "reasons.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))

	c, err := LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Total())

	txtPath := filepath.Join(dir, "reasons.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("nope"), 0o644))
	_, err = LoadFile(txtPath)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestReadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reasons.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	doc, err := ReadDocument(path)
	require.NoError(t, err)
	require.Len(t, doc.Categories, 2)
	assert.Equal(t, "Work", doc.Categories[0].Name)
	assert.Equal(t, 2, doc.Categories[0].Count)
}

func TestEmbedded(t *testing.T) {
	c, err := Embedded()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Categories())
	assert.Equal(t, len(c.Filter("", All)), c.Total())
}
