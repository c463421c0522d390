package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValid(t *testing.T) {
	tests := []struct {
		format Format
		valid  bool
	}{
		{FormatText, true},
		{FormatYAML, true},
		{FormatJSON, true},
		{FormatTable, true},
		{Format("dir"), false},
		{Format(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.format.Valid())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
		valid bool
	}{
		{"text", FormatText, true},
		{"yaml", FormatYAML, true},
		{"yml", FormatYAML, true},
		{"JSON", FormatJSON, true},
		{"table", FormatTable, true},
		{"invalid", Format("invalid"), false},
		{"", Format(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, valid := ParseFormat(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestValidFormats(t *testing.T) {
	assert.Equal(t, []string{"text", "yaml", "json", "table"}, ValidFormats())
}

type sample struct {
	Theme     string   `json:"theme" yaml:"theme"`
	Themelets []string `json:"themelets" yaml:"themelets"`
}

func TestWriteStructured(t *testing.T) {
	v := sample{Theme: "classic", Themelets: []string{"a", "b"}}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteStructured(&buf, FormatYAML, v))
		assert.Equal(t, "theme: classic\nthemelets:\n  - a\n  - b\n", buf.String())
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteStructured(&buf, FormatJSON, v))
		assert.JSONEq(t, `{"theme":"classic","themelets":["a","b"]}`, buf.String())
	})

	t.Run("table rejected", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, WriteStructured(&buf, FormatTable, v))
	})
}
