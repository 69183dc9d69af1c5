package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTemplateMode(t *testing.T) {
	tests := []struct {
		raw       string
		want      TemplateMode
		supported bool
	}{
		{"copy", ModeCopy, true},
		{"copy-file", ModeCopyFile, true},
		{"copy-dir", ModeCopyDir, true},
		{"render", ModeRender, true},
		{"stm.ai.renderer", ModeRender, true},
		{"", ModeUnsupported, false},
		{"symlink", TemplateMode("symlink"), false},
		// substrings of known modes are not modes
		{"dir", TemplateMode("dir"), false},
		{"copy-dir-please", TemplateMode("copy-dir-please"), false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := ParseTemplateMode(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.supported, got.Supported())
		})
	}
}

func TestTemplateEntryKey(t *testing.T) {
	tests := []struct {
		name  string
		entry TemplateEntry
		want  string
	}{
		{
			name:  "source names the key",
			entry: TemplateEntry{Source: "generated/network.c", Destination: "Src/net.c", Mode: ModeCopy},
			want:  "network.c",
		},
		{
			name:  "empty source uses destination name",
			entry: TemplateEntry{Destination: "Src/network_data.c", Mode: ModeCopy},
			want:  "network_data.c",
		},
		{
			name:  "render uses destination name",
			entry: TemplateEntry{Source: "templates/app_config.h.tmpl", Destination: "Inc/app_config.h", Mode: ModeRender},
			want:  "app_config.h",
		},
		{
			name:  "directory destination",
			entry: TemplateEntry{Destination: "Middlewares/ST/AI", Mode: ModeCopyDir},
			want:  "AI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.Key())
		})
	}
}
