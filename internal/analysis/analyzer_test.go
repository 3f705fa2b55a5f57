package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobi-alade/docsorter/internal/index"
)

// scriptedCompleter answers each prompt kind with a fixed reply and can
// fail selected kinds.
type scriptedCompleter struct {
	summary  string
	tags     string
	language string
	metadata string
	filename string
	failing  map[string]bool
	calls    []string
}

func (s *scriptedCompleter) Complete(_ context.Context, system, _ string) (string, error) {
	kind := promptKind(system)
	s.calls = append(s.calls, kind)
	if s.failing[kind] {
		return "", errors.New("model unavailable")
	}
	switch kind {
	case "summary":
		return s.summary, nil
	case "tags":
		return s.tags, nil
	case "language":
		return s.language, nil
	case "metadata":
		return s.metadata, nil
	case "filename":
		return s.filename, nil
	}
	return "", errors.New("unknown prompt")
}

func promptKind(system string) string {
	switch {
	case strings.Contains(system, "research analyst"):
		return "summary"
	case strings.Contains(system, "metadata specialist"):
		return "tags"
	case strings.Contains(system, "primary language"):
		return "language"
	case strings.Contains(system, "document analysis engine"):
		return "metadata"
	case strings.Contains(system, "file naming expert"):
		return "filename"
	}
	return "unknown"
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyzeSuccess(t *testing.T) {
	cls := &scriptedCompleter{
		summary:  "• point one\n• point two\n• point three",
		tags:     "topic-a, topic-b",
		language: "en",
		filename: "2021-03-15_topic-a_overview.txt",
	}
	a := NewAnalyzer(cls, Config{}, nil)

	rec := a.Analyze(context.Background(), writeDoc(t, "doc.txt", "Some document content."))

	assert.Equal(t, index.StatusAnalyzed, rec.Status)
	assert.Equal(t, "doc.txt", rec.FileName)
	assert.Equal(t, []string{"point one", "point two", "point three"}, rec.Summary)
	assert.Equal(t, []string{"topic-a", "topic-b"}, rec.Tags)
	assert.Equal(t, "topic-a", rec.PrimaryTag())
	assert.Equal(t, "en", rec.Language)
	assert.Equal(t, "2021-03-15_topic-a_overview.txt", rec.ProposedName)
	assert.True(t, rec.Meta.Empty(), "metadata step is off by default")
}

func TestAnalyzeTagFailureDegrades(t *testing.T) {
	cls := &scriptedCompleter{
		summary:  "- only point",
		language: "en",
		failing:  map[string]bool{"tags": true},
	}
	a := NewAnalyzer(cls, Config{}, nil)

	rec := a.Analyze(context.Background(), writeDoc(t, "doc.txt", "content"))

	assert.Equal(t, index.StatusAnalyzed, rec.Status)
	assert.Empty(t, rec.Tags)
	assert.Empty(t, rec.ProposedName, "no tags means no name to propose")
	assert.False(t, rec.Organizable())
}

func TestAnalyzeSummaryFailureSkipsTagging(t *testing.T) {
	cls := &scriptedCompleter{
		language: "zh",
		failing:  map[string]bool{"summary": true},
	}
	a := NewAnalyzer(cls, Config{}, nil)

	rec := a.Analyze(context.Background(), writeDoc(t, "doc.md", "# content"))

	assert.Equal(t, index.StatusAnalyzed, rec.Status)
	assert.Empty(t, rec.Summary)
	assert.NotContains(t, cls.calls, "tags", "empty summary must not be tagged")
	assert.Equal(t, "zh", rec.Language)
}

func TestAnalyzeExtractionFailure(t *testing.T) {
	a := NewAnalyzer(&scriptedCompleter{}, Config{}, nil)

	rec := a.Analyze(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))

	assert.Equal(t, index.StatusExtractionFailed, rec.Status)
	assert.Empty(t, rec.Summary)
	assert.Empty(t, rec.Tags)
}

func TestAnalyzeEmptyDocumentSkipped(t *testing.T) {
	cls := &scriptedCompleter{}
	a := NewAnalyzer(cls, Config{}, nil)

	rec := a.Analyze(context.Background(), writeDoc(t, "blank.txt", "  \n\t\n"))

	assert.Equal(t, index.StatusSkipped, rec.Status)
	assert.Empty(t, cls.calls, "skipped documents never reach the classifier")
}

func TestAnalyzeMetadataDrivenName(t *testing.T) {
	cls := &scriptedCompleter{
		summary:  "- point",
		tags:     "reports",
		language: "en",
		metadata: `{"authors": "J. Doe", "title": "Quarterly Report", "date": "2021-03-15"}`,
	}
	a := NewAnalyzer(cls, Config{Metadata: true}, nil)

	rec := a.Analyze(context.Background(), writeDoc(t, "report.txt", "content"))

	assert.Equal(t, index.StatusAnalyzed, rec.Status)
	assert.Equal(t, index.Metadata{Authors: "J. Doe", Title: "Quarterly Report", Date: "2021-03-15"}, rec.Meta)
	assert.Equal(t, "J. Doe - Quarterly Report - 2021-03-15.txt", rec.ProposedName)
	assert.NotContains(t, cls.calls, "filename", "metadata name wins without a classifier call")
}

func TestAnalyzeFilenameFallback(t *testing.T) {
	cls := &scriptedCompleter{
		summary:  "- point",
		tags:     "invoices, finance",
		language: "en",
		failing:  map[string]bool{"filename": true},
	}
	a := NewAnalyzer(cls, Config{}, nil)
	a.now = func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }

	rec := a.Analyze(context.Background(), writeDoc(t, "inv.txt", "content"))

	assert.Equal(t, "2024-06-01_invoices.txt", rec.ProposedName)
}

// panickyCompleter stands in for a misbehaving dependency.
type panickyCompleter struct{}

func (panickyCompleter) Complete(context.Context, string, string) (string, error) {
	panic("index out of range")
}

func TestAnalyzeConfinesPanicToRecord(t *testing.T) {
	a := NewAnalyzer(panickyCompleter{}, Config{}, nil)

	rec := a.Analyze(context.Background(), writeDoc(t, "doc.txt", "content"))

	assert.True(t, rec.Status.IsError())
	assert.Contains(t, string(rec.Status), "index out of range")
	assert.Equal(t, "doc.txt", rec.FileName, "identity fields survive the panic")
	assert.False(t, rec.Organizable())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abcdef", 3))
	assert.Equal(t, "abcdef", truncate("abcdef", 10))
	assert.Equal(t, "abcdef", truncate("abcdef", 0))

	// Never splits a multi-byte rune.
	assert.Equal(t, "日", truncate("日本語", 4))
	assert.Equal(t, "日本", truncate("日本語", 6))
	assert.True(t, utf8.ValidString(truncate("日本語 corpus", 5)))
}
