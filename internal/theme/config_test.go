package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigEntryFiles(t *testing.T) {
	tests := []struct {
		name         string
		cfg          Config
		wantCSS      string
		wantLanguage string
		wantTemplate string
	}{
		{
			name:         "legacy defaults",
			cfg:          Config{Version: FormatLegacy},
			wantCSS:      "custom.css",
			wantLanguage: "vm",
			wantTemplate: "portal_normal.vm",
		},
		{
			name:         "current defaults",
			cfg:          Config{Version: FormatCurrent},
			wantCSS:      "_custom.scss",
			wantLanguage: "ftl",
			wantTemplate: "portal_normal.ftl",
		},
		{
			name:         "legacy with freemarker",
			cfg:          Config{Version: FormatLegacy, Language: LanguageFreeMarker},
			wantCSS:      "custom.css",
			wantLanguage: "ftl",
			wantTemplate: "portal_normal.ftl",
		},
		{
			name:         "current with velocity",
			cfg:          Config{Version: FormatCurrent, Language: LanguageVelocity},
			wantCSS:      "_custom.scss",
			wantLanguage: "vm",
			wantTemplate: "portal_normal.vm",
		},
		{
			name:         "unset version behaves as current",
			cfg:          Config{},
			wantCSS:      "_custom.scss",
			wantLanguage: "ftl",
			wantTemplate: "portal_normal.ftl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCSS, tt.cfg.CSSEntryFile())
			assert.Equal(t, tt.wantLanguage, tt.cfg.TemplateLanguage())
			assert.Equal(t, tt.wantTemplate, tt.cfg.TemplateEntryFile())
		})
	}
}
