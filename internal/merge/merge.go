package merge

import (
	"stringsync/internal/catalog"
)

// DefaultTempTag marks values that still need translator attention.
const DefaultTempTag = "*"

// Options configures one merge call.
type Options struct {
	// TempTag is the prefix marking not-yet-translated values. Falls back
	// to DefaultTempTag when empty.
	TempTag string
	// DevelopmentLanguage exempts the table from temporary tagging: the
	// base language's values are always authoritative.
	DevelopmentLanguage bool
}

// Result classifies every entry touched by one merge call. Added, Temporary
// and Translated partition the new table's keys; Removed covers exactly the
// old keys absent from the new table. Defaults is an overlay (entries whose
// value still equals their key) used by the policy layer, not a fifth class.
type Result struct {
	Added      []*catalog.Entry
	Temporary  []*catalog.Entry
	Translated []*catalog.Entry
	Removed    []*catalog.Entry
	Defaults   []*catalog.Entry

	// Total is the number of entries in the new table.
	Total int
	// TempTag is the effective tag used for classification.
	TempTag string
}

// HasTemporary reports whether any entry still needs translation.
func (r *Result) HasTemporary() bool {
	return len(r.Temporary) > 0
}

// Merge reconciles the previously committed table with a freshly extracted
// one. Iteration follows the new table's order, which becomes the merged
// order. Values survive from the old table; comments always come from the
// new extraction. Keys no longer referenced by source are pruned.
//
// A nil old table is treated as empty, so every new entry is added (and
// temporary-tagged unless this is the development language).
func Merge(old, fresh *catalog.Table, opts Options) (*catalog.Table, *Result) {
	tag := opts.TempTag
	if tag == "" {
		tag = DefaultTempTag
	}
	if old == nil {
		old = catalog.New()
	}

	merged := catalog.New()
	res := &Result{Total: fresh.Len(), TempTag: tag}

	for _, n := range fresh.Entries {
		o, ok := old.Lookup(n.Key)
		if !ok {
			e := n.Clone()
			if opts.DevelopmentLanguage {
				res.Added = append(res.Added, e)
			} else {
				e.Retag(tag)
				res.Temporary = append(res.Temporary, e)
			}
			merged.Append(e)
			continue
		}

		e := o.Clone()
		e.Comments = append([]string(nil), n.Comments...)
		if opts.DevelopmentLanguage || !e.Tagged(tag) {
			res.Translated = append(res.Translated, e)
		} else {
			res.Temporary = append(res.Temporary, e)
		}
		merged.Append(e)
	}

	for _, o := range old.Entries {
		if _, ok := fresh.Lookup(o.Key); !ok {
			res.Removed = append(res.Removed, o)
		}
	}

	for _, e := range merged.Entries {
		if e.Key == e.Value {
			res.Defaults = append(res.Defaults, e)
		}
	}

	return merged, res
}
