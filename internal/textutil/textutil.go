package textutil

// Truncate shortens a string to maxLen, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Plural returns the singular word for n == 1 and singular+"s" otherwise.
func Plural(n int, singular string) string {
	if n == 1 {
		return singular
	}
	return singular + "s"
}

// Percent returns part as an integer percentage of total, 0 when total is 0.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return part * 100 / total
}
