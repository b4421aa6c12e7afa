package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformed reports a comment block with no following key/value record
// after at least one record was already parsed. Trailing whitespace and
// files that never contained a record terminate parsing silently instead.
var ErrMalformed = errors.New("malformed strings table")

var (
	reRecord        = regexp.MustCompile(`^"(.+)" = "(.+)";$`)
	reCommentSingle = regexp.MustCompile(`^/\*.*\*/$`)
	reCommentEnd    = regexp.MustCompile(`^.*\*/$`)
)

// lineScanner yields lines with their trailing newline kept, so a blank
// separator line ("\n") stays distinct from end of input ("").
type lineScanner struct {
	rest string
}

func (s *lineScanner) next() string {
	if s.rest == "" {
		return ""
	}
	i := strings.IndexByte(s.rest, '\n')
	if i < 0 {
		line := s.rest
		s.rest = ""
		return line
	}
	line := s.rest[:i+1]
	s.rest = s.rest[i+1:]
	return line
}

func chomp(line string) string {
	return strings.TrimSuffix(line, "\n")
}

// parseEntries reads records of the form
//
//	[comment block]
//	"<key>" = "<value>";
//	[blank lines]
//
// in order. The comment block is either one /* ... */ line or a run of lines
// ending with */; it is captured verbatim and never interpreted.
func parseEntries(text string) ([]*Entry, error) {
	sc := &lineScanner{rest: text}
	var entries []*Entry
	foundOne := false

	line := sc.next()
	for line != "" {
		comments := []string{line}
		if !reCommentSingle.MatchString(chomp(line)) {
			for line != "" && !reCommentEnd.MatchString(chomp(line)) {
				line = sc.next()
				comments = append(comments, line)
			}
		}

		line = sc.next()
		var key, value string
		if m := reRecord.FindStringSubmatch(chomp(line)); line != "" && m != nil {
			foundOne = true
			key, value = m[1], m[2]
		} else {
			last := comments[len(comments)-1]
			if last == "" || !foundOne {
				break
			}
			return nil, fmt.Errorf("comment block with no record after entry %d: %w", len(entries), ErrMalformed)
		}

		line = sc.next()
		for line == "\n" {
			line = sc.next()
		}

		block := make([]string, len(comments))
		for i, c := range comments {
			block[i] = chomp(c)
		}
		entries = append(entries, NewEntry(key, value, block))
	}

	return entries, nil
}
