package merge

import (
	"testing"

	"stringsync/internal/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesOnePerEntry(t *testing.T) {
	old := table(
		entry("HELLO", "Bonjour", "/* c */"),
		entry("GONE", "Parti", "/* c */"),
	)
	fresh := table(
		entry("HELLO", "Hello", "/* c */"),
		entry("BYE", "Goodbye", "/* c */"),
	)

	_, res := Merge(old, fresh, Options{TempTag: "*"})
	lines := res.Lines()

	require.Len(t, lines, 3)
	assert.Equal(t, `    - [...Removed] "GONE" = "Parti"`, lines[0])
	assert.Equal(t, `    t [.Temporary] "BYE" = "*Goodbye"`, lines[1])
	assert.Equal(t, `    . [Translated] "HELLO" = "Bonjour"`, lines[2])
}

func TestLinesAddedDevelopmentLanguage(t *testing.T) {
	fresh := table(entry("NEW", "Brand new", "/* c */"))

	_, res := Merge(catalog.New(), fresh, Options{TempTag: "*", DevelopmentLanguage: true})
	lines := res.Lines()

	require.Len(t, lines, 1)
	assert.Equal(t, `    + [.....Added] "NEW"`, lines[0])
}

func TestSummaryWording(t *testing.T) {
	tests := []struct {
		name       string
		translated int
		temporary  int
		want       []string
	}{
		{
			name:       "all translated",
			translated: 2,
			temporary:  0,
			want: []string{
				"  => 2 strings have been translated [Total: 2]",
				"  => 100% of all strings were translated",
			},
		},
		{
			name:       "one of two",
			translated: 1,
			temporary:  1,
			want: []string{
				"  => 1 string has been translated [Total: 2]",
				"  => 50% of all strings were translated but 50% are still temporary strings",
				"  => 1 more string left to translate",
			},
		},
		{
			name:       "nothing translated",
			translated: 0,
			temporary:  2,
			want: []string{
				"  => 0 strings have been translated [Total: 2]",
				"  => 0% of all strings were translated but 100% are still temporary strings",
				"  => 2 more strings left to translate",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &Result{Total: tt.translated + tt.temporary, TempTag: "*"}
			for i := 0; i < tt.translated; i++ {
				res.Translated = append(res.Translated, entry("T", "t"))
			}
			for i := 0; i < tt.temporary; i++ {
				res.Temporary = append(res.Temporary, entry("P", "*p"))
			}
			assert.Equal(t, tt.want, res.Summary())
		})
	}
}

func TestSummaryEmptyTable(t *testing.T) {
	res := &Result{Total: 0, TempTag: "*"}
	lines := res.Summary()
	require.NotEmpty(t, lines)
	assert.Equal(t, "  => 0 strings have been translated [Total: 0]", lines[0])
}
