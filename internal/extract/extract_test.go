package extract

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubCommand(t *testing.T, name, body string) {
	t.Helper()
	bin := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(bin, name), []byte(body), 0755))
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestExtractNoSourceFilesIsNoOp(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("nothing to scan"), 0644))

	// No stub needed: with nothing to scan the extractor is never exec'd.
	err := NewExtractor("NSLocalizedString").Extract(context.Background(), src, t.TempDir())
	require.NoError(t, err)
}

func TestExtractTruncatesToolDiagnostics(t *testing.T) {
	noise := strings.Repeat("x", 400)
	stubCommand(t, "xcrun", "#!/bin/sh\necho "+noise+"\nexit 1\n")

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "View.swift"),
		[]byte("NSLocalizedString(\"HELLO\", comment: \"greeting\")\n"), 0644))

	err := NewExtractor("NSLocalizedString").Extract(context.Background(), src, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extractLocStrings")
	assert.Contains(t, err.Error(), "...")
	assert.Less(t, len(err.Error()), 300)
}

func TestIsTextual(t *testing.T) {
	cases := []struct {
		encoding string
		textual  bool
	}{
		{"us-ascii", true},
		{"utf-8", true},
		{"utf-16le", true},
		{"binary", false},
		{"iso-8859-1", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.textual, IsTextual(tc.encoding), tc.encoding)
	}
}
