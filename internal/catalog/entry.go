package catalog

import (
	"strings"
)

// Entry is a single key/value record in a .strings table, together with the
// comment block the extractor emitted above it.
type Entry struct {
	// Key is the lookup identifier. Immutable once parsed.
	Key string
	// Value is the localized text. Mutable via Retag or translation edits.
	Value string
	// Comments holds the raw comment lines above the record, without
	// trailing newlines. Never interpreted, only carried.
	Comments []string
}

// NewEntry creates an entry from its parts.
func NewEntry(key, value string, comments []string) *Entry {
	return &Entry{
		Key:      key,
		Value:    value,
		Comments: comments,
	}
}

// Retag prepends tag to the value unless the value already carries it.
// Idempotent: retagging an already-tagged value is a no-op.
func (e *Entry) Retag(tag string) {
	if tag == "" || strings.HasPrefix(e.Value, tag) {
		return
	}
	e.Value = tag + e.Value
}

// Tagged reports whether the value still carries the temporary tag prefix.
func (e *Entry) Tagged(tag string) bool {
	return tag != "" && strings.HasPrefix(e.Value, tag)
}

// Clone returns an independent copy. The merge engine mutates clones of old
// entries (fresh comments, retagging) without touching the source table.
func (e *Entry) Clone() *Entry {
	comments := make([]string, len(e.Comments))
	copy(comments, e.Comments)
	return &Entry{
		Key:      e.Key,
		Value:    e.Value,
		Comments: comments,
	}
}

// Record returns the key/value line in .strings syntax.
func (e *Entry) Record() string {
	return `"` + e.Key + `" = "` + e.Value + `";`
}

// String serializes the full record: comment block, key/value line, and the
// blank separator line. Parsing then serializing an untouched entry is
// byte-identical.
func (e *Entry) String() string {
	var b strings.Builder
	for _, c := range e.Comments {
		b.WriteString(c)
		b.WriteByte('\n')
	}
	b.WriteString(e.Record())
	b.WriteString("\n\n")
	return b.String()
}
