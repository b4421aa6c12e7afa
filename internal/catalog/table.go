package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
)

// Table is one locale's string catalog: an ordered sequence of entries plus
// a key index kept in sync with it. Iteration order is serialization order.
type Table struct {
	Entries []*Entry

	index map[string]*Entry
}

// New creates an empty table.
func New() *Table {
	return &Table{index: make(map[string]*Entry)}
}

// Parse builds a table from raw .strings text. Duplicate keys resolve
// last-write-wins with a logged warning, so lookups stay deterministic.
func Parse(data []byte) (*Table, error) {
	entries, err := parseEntries(string(data))
	if err != nil {
		return nil, err
	}

	t := New()
	for _, e := range entries {
		t.Append(e)
	}
	return t, nil
}

// Load reads and parses the table at path. A missing file surfaces as
// fs.ErrNotExist through the wrap; the caller decides whether that means an
// empty previous catalog or a failed extraction.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// Save writes all entries in collection order, overwriting path.
func (t *Table) Save(path string) error {
	var b strings.Builder
	for _, e := range t.Entries {
		b.WriteString(e.String())
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// Append adds an entry, replacing any earlier entry with the same key in
// place (last write wins).
func (t *Table) Append(e *Entry) {
	if prev, ok := t.index[e.Key]; ok {
		log.Warn().Str("key", e.Key).Msg("Duplicate key, keeping last value")
		for i, existing := range t.Entries {
			if existing == prev {
				t.Entries[i] = e
				break
			}
		}
		t.index[e.Key] = e
		return
	}

	t.Entries = append(t.Entries, e)
	t.index[e.Key] = e
}

// Lookup returns the entry for key, if present.
func (t *Table) Lookup(key string) (*Entry, bool) {
	e, ok := t.index[key]
	return e, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.Entries)
}
