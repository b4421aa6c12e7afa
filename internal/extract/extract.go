// Package extract wraps the external collaborators that produce a fresh
// string table: the string extractor scanning source files and the encoding
// converter normalizing its output to UTF-8. Neither is reimplemented here;
// both are exec'd, and the rest of the tool only consumes the files they
// leave behind.
package extract

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"stringsync/internal/textutil"

	"github.com/rs/zerolog/log"
)

// sourceExtensions lists file types scanned for marker-routine references.
var sourceExtensions = map[string]bool{
	".swift": true,
	".m":     true,
}

// Extractor regenerates a locale's string table from source code references
// by shelling out to `xcrun extractLocStrings`.
type Extractor struct {
	// Routine is the marker function name passed with -s.
	Routine string
}

// NewExtractor creates an extractor for the given marker routine.
func NewExtractor(routine string) *Extractor {
	return &Extractor{Routine: routine}
}

// Extract scans sourceRoot for source files and writes the extracted table
// into outputDir. With no source files present nothing is written; the
// caller decides whether an absent table means an empty catalog.
func (e *Extractor) Extract(ctx context.Context, sourceRoot, outputDir string) error {
	files, err := e.sourceFiles(sourceRoot)
	if err != nil {
		return fmt.Errorf("collect source files: %w", err)
	}
	if len(files) == 0 {
		log.Debug().Str("root", sourceRoot).Msg("No source files to extract from")
		return nil
	}

	args := append([]string{"extractLocStrings", "-q", "-s", e.Routine, "-o", outputDir}, files...)
	cmd := exec.CommandContext(ctx, "xcrun", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		// The tool can dump pages of diagnostics; keep the error readable.
		return fmt.Errorf("extractLocStrings: %w: %s", err, textutil.Truncate(strings.TrimSpace(string(out)), 200))
	}
	return nil
}

// sourceFiles walks sourceRoot collecting extractable source files.
func (e *Extractor) sourceFiles(sourceRoot string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(sourceRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Converter normalizes table files into the UTF-8 form the parser expects.
type Converter struct{}

// NewConverter creates a converter.
func NewConverter() *Converter {
	return &Converter{}
}

// DetectEncoding sniffs a file's text encoding via `file --mime-encoding`.
func (c *Converter) DetectEncoding(ctx context.Context, path string) (string, error) {
	out, err := exec.CommandContext(ctx, "file", "-b", "--mime-encoding", path).Output()
	if err != nil {
		return "", fmt.Errorf("detect encoding: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// IsTextual reports whether an encoding sniff result is usable as-is by the
// parser (plain ASCII or any UTF variant).
func IsTextual(encoding string) bool {
	return strings.HasPrefix(encoding, "us-ascii") || strings.HasPrefix(encoding, "utf")
}

// ToUTF8 converts the UTF-16 table at src into a UTF-8 copy at dst via iconv.
func (c *Converter) ToUTF8(ctx context.Context, src, dst string) error {
	out, err := exec.CommandContext(ctx, "iconv", "-f", "UTF-16", "-t", "UTF-8", src).Output()
	if err != nil {
		return fmt.Errorf("iconv %s: %w", src, err)
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return fmt.Errorf("write converted table: %w", err)
	}
	return nil
}
