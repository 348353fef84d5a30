package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{
			name:  "input extension stripped",
			input: "elements.csv",
			want:  "elements",
		},
		{
			name:  "input path keeps directory",
			input: "data/elements.xlsx",
			want:  "data/elements",
		},
		{
			name:   "output without extension used as is",
			output: "out/chart",
			input:  "elements.csv",
			want:   "out/chart",
		},
		{
			name:   "output format extension stripped",
			output: "chart.svg",
			input:  "elements.csv",
			want:   "chart",
		},
		{
			name:   "output non-format extension kept",
			output: "chart.v2",
			input:  "elements.csv",
			want:   "chart.v2",
		},
		{
			name:  "remote source uses last segment",
			input: "https://example.com/data/elements.csv",
			want:  "elements",
		},
		{
			name:  "remote source without path",
			input: "https://example.com/",
			want:  "chart",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{
			"svg":  []byte("<svg/>"),
			"json": []byte("{}"),
		},
		formats:  []string{"svg", "json"},
		input:    filepath.Join(dir, "elements.csv"),
		rowCount: 3,
		kind:     "table",
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	for _, name := range []string{"elements.svg", "elements.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected artifact %s: %v", name, err)
		}
	}
}

func TestWriteArtifactsExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "custom.svg")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		formats:   []string{"svg"},
		input:     "elements.csv",
		output:    out,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected artifact at explicit path: %v", err)
	}
}
