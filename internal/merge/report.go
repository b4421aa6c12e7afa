package merge

import (
	"fmt"

	"stringsync/internal/textutil"
)

// Lines renders one classification line per entry, grouped by category in
// table order: removed, added, temporary, translated.
func (r *Result) Lines() []string {
	var lines []string
	for _, e := range r.Removed {
		lines = append(lines, fmt.Sprintf(`    - [...Removed] "%s" = "%s"`, e.Key, e.Value))
	}
	for _, e := range r.Added {
		lines = append(lines, fmt.Sprintf(`    + [.....Added] "%s"`, e.Key))
	}
	for _, e := range r.Temporary {
		lines = append(lines, fmt.Sprintf(`    t [.Temporary] "%s" = "%s"`, e.Key, e.Value))
	}
	for _, e := range r.Translated {
		lines = append(lines, fmt.Sprintf(`    . [Translated] "%s" = "%s"`, e.Key, e.Value))
	}
	return lines
}

// Summary renders the per-table completeness recap.
func (r *Result) Summary() []string {
	translated := len(r.Translated)
	left := r.Total - translated
	pct := textutil.Percent(translated, r.Total)
	pctTemp := textutil.Percent(len(r.Temporary), r.Total)

	verb := "have"
	if translated == 1 {
		verb = "has"
	}

	lines := []string{
		fmt.Sprintf("  => %d %s %s been translated [Total: %d]",
			translated, textutil.Plural(translated, "string"), verb, r.Total),
	}

	second := fmt.Sprintf("  => %d%% of all strings were translated", pct)
	if pctTemp != 0 {
		second += fmt.Sprintf(" but %d%% are still temporary strings", pctTemp)
	}
	lines = append(lines, second)

	if pct != 100 {
		lines = append(lines, fmt.Sprintf("  => %d more %s left to translate",
			left, textutil.Plural(left, "string")))
	}

	return lines
}
