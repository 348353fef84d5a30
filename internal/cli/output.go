package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/elemvis/elemvis/pkg/pipeline"
)

// basePath derives the base output path from the output flag and the
// input source. With no output flag the input's extension is stripped;
// an output flag carrying a known format extension loses that extension.
// Remote sources fall back to the last URL path segment.
func basePath(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if strings.Contains(input, "://") {
		input = input[strings.LastIndex(input, "/")+1:]
		if input == "" {
			input = "chart"
		}
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// artifactWriteParams bundles what writeArtifacts needs to place each
// rendered artifact on disk.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	cacheHit  bool
	rowCount  int
	kind      string
}

// writeArtifacts writes one file per requested format. A single format
// with an explicit output path goes exactly there; otherwise file names
// are base.format.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.input)

	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if p.output != "" && len(p.formats) == 1 && filepath.Ext(p.output) != "" {
			path = p.output
		}

		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printStats(p.rowCount, p.kind, p.cacheHit)
	return nil
}
