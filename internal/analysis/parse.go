package analysis

import (
	"strings"
	"time"
)

// Classifier replies are untrusted free text. The parsers here are total:
// they always return a usable value and never fail the record.

// ParseBullets extracts at most max non-empty lines from a summary reply,
// stripping leading bullet markers and list numbering.
func ParseBullets(reply string, max int) []string {
	var bullets []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "-•*– \t")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		bullets = append(bullets, line)
		if len(bullets) == max {
			break
		}
	}
	return bullets
}

// ParseTags splits a comma-separated tag reply, trimming entries and
// dropping empty ones. Insertion order is kept; no deduplication beyond
// empty-entry removal. The list is capped at max entries.
func ParseTags(reply string, max int) []string {
	var tags []string
	for _, t := range strings.Split(reply, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
		if len(tags) == max {
			break
		}
	}
	return tags
}

// NormalizeLanguage maps a free-text language reply onto the two codes
// this deployment's corpus needs. Any reply mentioning Chinese wins "zh";
// everything else, however verbose, defaults to "en".
func NormalizeLanguage(reply string) string {
	lower := strings.ToLower(reply)
	if strings.Contains(lower, "zh") || strings.Contains(lower, "chinese") {
		return "zh"
	}
	return "en"
}

// dateLayouts are tried in order when normalizing a metadata date.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"01/02/2006",
	"2006",
}

// NormalizeDate re-renders a free-text date as YYYY-MM-DD. Unparseable
// input yields ""; model output is never trusted verbatim.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}
