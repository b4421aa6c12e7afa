package localedir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Extension is the locale folder suffix.
const Extension = ".lproj"

// baseFolder holds the shared base localization; it always counts as the
// development language.
const baseFolder = "Base" + Extension

// Dir is one discovered locale folder.
type Dir struct {
	// Path is the absolute folder path.
	Path string
	// Name is the folder name, e.g. "fr.lproj".
	Name string
}

// IsDevelopment reports whether this folder holds the project's base or
// development-language catalog. Matching is by substring against the
// configured development folder name, the way build paths are compared.
func (d Dir) IsDevelopment(devFolder string) bool {
	return strings.Contains(d.Path, devFolder) || strings.Contains(d.Path, baseFolder)
}

// DevFolder derives the development folder name from a locale identifier,
// e.g. "en" or "en.lproj" both yield "en.lproj".
func DevFolder(locale string) string {
	return strings.TrimSuffix(locale, filepath.Ext(locale)) + Extension
}

// Discover lists all *.lproj folders directly under root.
func Discover(root string) ([]Dir, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	items, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read source directory: %w", err)
	}

	var dirs []Dir
	for _, item := range items {
		if !item.IsDir() || !strings.HasSuffix(item.Name(), Extension) {
			continue
		}
		dirs = append(dirs, Dir{
			Path: filepath.Join(root, item.Name()),
			Name: item.Name(),
		})
	}

	log.Info().Int("count", len(dirs)).Str("root", root).Msg("Discovered locale folders")
	return dirs, nil
}
