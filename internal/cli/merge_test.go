package cli

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"stringsync/internal/policy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestMergeTablesWritesMergedCatalog(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeTable(t, dir, "old.strings", "/* c */\n\"HELLO\" = \"Bonjour\";\n\n")
	newPath := writeTable(t, dir, "new.strings",
		"/* c */\n\"HELLO\" = \"Hello\";\n\n/* f */\n\"BYE\" = \"Goodbye\";\n\n")
	outPath := filepath.Join(dir, "merged.strings")

	res, err := mergeTables(oldPath, newPath, outPath, "*", false)
	require.NoError(t, err)

	assert.Len(t, res.Translated, 1)
	assert.Len(t, res.Temporary, 1)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "/* c */\n\"HELLO\" = \"Bonjour\";\n\n/* f */\n\"BYE\" = \"*Goodbye\";\n\n", string(data))
}

func TestMergeTablesMissingOldStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	newPath := writeTable(t, dir, "new.strings", "/* c */\n\"A\" = \"Alpha\";\n\n")
	outPath := filepath.Join(dir, "merged.strings")

	res, err := mergeTables(filepath.Join(dir, "absent.strings"), newPath, outPath, "*", false)
	require.NoError(t, err)

	require.Len(t, res.Temporary, 1)
	assert.Equal(t, "*Alpha", res.Temporary[0].Value)
}

func TestMergeTablesMalformedOldStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeTable(t, dir, "old.strings", "/* c */\n\"A\" = \"a\";\n\n/* dangling */\n")
	newPath := writeTable(t, dir, "new.strings", "/* c */\n\"A\" = \"Alpha\";\n\n")
	outPath := filepath.Join(dir, "merged.strings")

	res, err := mergeTables(oldPath, newPath, outPath, "*", false)
	require.NoError(t, err)

	// The unusable old table contributes nothing: A counts as newly added.
	require.Len(t, res.Temporary, 1)
	assert.Equal(t, "*Alpha", res.Temporary[0].Value)
}

func TestMergeTablesMissingNewFails(t *testing.T) {
	dir := t.TempDir()
	oldPath := writeTable(t, dir, "old.strings", "/* c */\n\"A\" = \"a\";\n\n")

	_, err := mergeTables(oldPath, filepath.Join(dir, "absent.strings"), filepath.Join(dir, "out"), "*", false)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAsExitCodes(t *testing.T) {
	assert.Equal(t, ExitMissingFile, asExit(fs.ErrNotExist).code)
	assert.Equal(t, ExitError, asExit(os.ErrPermission).code)
}

func TestFinishRun(t *testing.T) {
	require.NoError(t, finishRun(policy.Outcome{Status: policy.Success}))
	require.NoError(t, finishRun(policy.Outcome{Status: policy.Warning, Message: "pending"}))

	err := finishRun(policy.Outcome{Status: policy.Failure, Message: "incomplete"})
	require.Error(t, err)
	var ee *exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, ExitIncomplete, ee.code)
}
