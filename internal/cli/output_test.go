package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pfrederiksen/gdc-vault/internal/vault"
)

func TestWriteClassifications_Text(t *testing.T) {
	tally := []vault.Classification{
		{Track: "Programming", Count: 120},
		{Track: "Visual Arts", Count: 45},
		{Track: "Advanced Graphics Summit", Count: 45},
	}

	var buf bytes.Buffer
	if err := WriteClassifications(&buf, tally, FormatText); err != nil {
		t.Fatalf("WriteClassifications() error = %v", err)
	}

	want := "Programming: 120\nVisual Arts: 45\nAdvanced Graphics Summit: 45\n"
	if buf.String() != want {
		t.Errorf("WriteClassifications() = %q, want %q", buf.String(), want)
	}
}

func TestWriteClassifications_Empty(t *testing.T) {
	tests := []struct {
		format OutputFormat
		want   string
	}{
		{FormatText, ""},
		{FormatJSON, `"classifications": []`},
		{FormatTable, "Total"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteClassifications(&buf, nil, tt.format); err != nil {
				t.Fatalf("WriteClassifications() error = %v", err)
			}
			if !strings.Contains(buf.String(), tt.want) {
				t.Errorf("WriteClassifications() = %q, should contain %q", buf.String(), tt.want)
			}
		})
	}
}

func TestWriteClassifications_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteClassifications(&buf, nil, OutputFormat("yaml")); err == nil {
		t.Error("WriteClassifications() expected error for unknown format")
	}
}

func TestOutputFormat_Valid(t *testing.T) {
	for _, f := range []OutputFormat{FormatText, FormatJSON, FormatTable} {
		if !f.Valid() {
			t.Errorf("%q.Valid() = false, want true", f)
		}
	}
	if OutputFormat("csv").Valid() {
		t.Error(`"csv".Valid() = true, want false`)
	}
}

func TestIsTerminal(t *testing.T) {
	var buf bytes.Buffer
	if isTerminal(&buf) {
		t.Error("isTerminal(buffer) = true, want false")
	}
}
