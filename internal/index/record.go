// Package index holds the per-document record model and its persistence:
// the tabular index artifact (CSV or XLSX) and the SQLite run ledger that
// makes interrupted analysis runs resumable.
package index

import "strings"

// Status is the terminal processing state of one document record.
type Status string

const (
	StatusAnalyzed         Status = "Analyzed"
	StatusExtractionFailed Status = "Extraction Failed"
	StatusSkipped          Status = "Skipped - No text content"
)

const errorStatusPrefix = "Error: "

// ErrorStatus builds the detail-carrying error state.
func ErrorStatus(detail string) Status {
	return Status(errorStatusPrefix + detail)
}

// IsError reports whether s carries an error detail.
func (s Status) IsError() bool {
	return strings.HasPrefix(string(s), errorStatusPrefix)
}

// Metadata is the optional structured metadata the classifier extracts.
// All fields default to empty; a malformed reply never fails the record.
type Metadata struct {
	Authors string `json:"authors"`
	Title   string `json:"title"`
	Date    string `json:"date"`
	Subject string `json:"subject"`
}

// Empty reports whether no metadata field was recovered.
func (m Metadata) Empty() bool {
	return m.Authors == "" && m.Title == "" && m.Date == "" && m.Subject == ""
}

// Record is one row of the index: a single source document and everything
// the analysis stage derived for it. SourcePath is the unique key.
type Record struct {
	SourcePath   string
	FileName     string
	Summary      []string // at most 3 bullet lines
	Tags         []string // insertion order, first entry is the primary tag
	ProposedName string
	Language     string
	Meta         Metadata
	Status       Status

	// Reused marks a record served from the ledger instead of a fresh
	// analysis. Bookkeeping only; never persisted.
	Reused bool
}

// PrimaryTag returns the first tag, or "" when the record has none.
func (r Record) PrimaryTag() string {
	if len(r.Tags) == 0 {
		return ""
	}
	return r.Tags[0]
}

// Organizable reports whether the record participates in the taxonomy and
// plan stages: analyzed with at least one tag.
func (r Record) Organizable() bool {
	return r.Status == StatusAnalyzed && len(r.Tags) > 0
}

// JoinSummary renders the bullet list for tabular storage.
func JoinSummary(summary []string) string {
	return strings.Join(summary, " | ")
}

// SplitSummary parses the stored form back into bullet lines.
func SplitSummary(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, " | ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// JoinTags renders the tag list for tabular storage.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SplitTags parses a comma-separated tag cell, tolerating ", " joins.
func SplitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
