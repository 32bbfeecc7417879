package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/sardine/pkg/pipeline"
)

// extensions maps each format to the suffix of its output file. The lot
// document gets a compound suffix so it never overwrites a site.json input.
var extensions = map[string]string{
	pipeline.FormatSVG:     ".svg",
	pipeline.FormatPNG:     ".png",
	pipeline.FormatPDF:     ".pdf",
	pipeline.FormatJSON:    ".lot.json",
	pipeline.FormatDOT:     ".roads.dot",
	pipeline.FormatNetwork: ".roads.svg",
}

// artifactWriteParams describes rendered artifacts and where they go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string // source file; names the outputs when output is empty
	output    string // "-" writes a single artifact to stdout
}

// writeArtifacts writes each artifact to its own file and returns the paths
// written, in format order. A single artifact goes to output verbatim when
// output is given.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return nil, fmt.Errorf("stdout output needs exactly one format, got %d", len(p.formats))
		}
		_, err := os.Stdout.Write(p.artifacts[p.formats[0]])
		return nil, err
	}

	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := p.output
		if len(p.formats) > 1 || path == "" {
			path = basePath(p.output, p.input) + extensions[format]
		}
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output ends in a known format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		output = input
	}
	for _, ext := range []string{".lot.json", ".site.json", ".roads.dot", ".roads.svg"} {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return strings.TrimSuffix(output, filepath.Ext(output))
}

func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
