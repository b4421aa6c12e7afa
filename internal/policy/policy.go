package policy

import (
	"fmt"
	"strings"

	"stringsync/internal/merge"
)

// Policy configures the run-level completeness decision.
type Policy struct {
	// Strict fails the run when any untranslated or temporary entries
	// were found anywhere.
	Strict bool
	// SuppressWarnings silences the temporary-strings warning.
	SuppressWarnings bool
	// FailOnDefaults counts development-language entries whose value
	// still equals their key as untranslated. Disabling it reproduces
	// the lenient behavior where default values pass unnoticed.
	FailOnDefaults bool
	// TempTag is quoted in the failure message.
	TempTag string
}

// Status is the run-level verdict.
type Status int

const (
	Success Status = iota
	Warning
	Failure
)

// Outcome is the end-of-run decision, computed once after all locales.
type Outcome struct {
	Status  Status
	Message string
}

// Aggregator accumulates classification results across all per-locale
// merges in one run. It replaces any process-wide state: each merge hands
// its result to Record and the caller asks Decide once at the end.
type Aggregator struct {
	temporaryFound    bool
	untranslatedFound bool
	tempDetails       strings.Builder
	defaultDetails    strings.Builder
	translated        int
	total             int
}

// NewAggregator creates an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record folds one table's merge result into the run-wide state. Untranslated
// means: a development-language entry whose value still equals its key (when
// the default check is on), or any non-development entry still temporary-tagged.
func (a *Aggregator) Record(table string, res *merge.Result, developmentLanguage bool, pol Policy) {
	a.translated += len(res.Translated)
	a.total += res.Total

	if res.HasTemporary() {
		a.temporaryFound = true
		fmt.Fprintf(&a.tempDetails, "\n\n+ %s:", table)
		for _, e := range res.Temporary {
			fmt.Fprintf(&a.tempDetails, "\n  ? %s", e.Record())
		}
		if !developmentLanguage {
			a.untranslatedFound = true
		}
	}

	if developmentLanguage && pol.FailOnDefaults && len(res.Defaults) > 0 {
		a.untranslatedFound = true
		fmt.Fprintf(&a.defaultDetails, "\n\n+ %s:", table)
		for _, e := range res.Defaults {
			fmt.Fprintf(&a.defaultDetails, "\n  ? %s", e.Record())
		}
	}
}

// TranslatedCount returns the run-wide number of translated entries.
func (a *Aggregator) TranslatedCount() int { return a.translated }

// TotalCount returns the run-wide number of entries seen.
func (a *Aggregator) TotalCount() int { return a.total }

// Decide computes the run verdict from the accumulated state.
func (a *Aggregator) Decide(pol Policy) Outcome {
	if pol.Strict && (a.untranslatedFound || a.temporaryFound) {
		msg := fmt.Sprintf("You have strings that are not translated! "+
			"Replace them with temporary strings (prefix their value with '%s') "+
			"or add translated ones.", pol.TempTag)
		return Outcome{
			Status:  Failure,
			Message: msg + a.defaultDetails.String() + a.tempDetails.String(),
		}
	}

	if a.temporaryFound && !pol.SuppressWarnings {
		return Outcome{
			Status:  Warning,
			Message: "There are string keys which need to be translated." + a.tempDetails.String(),
		}
	}

	return Outcome{Status: Success}
}
