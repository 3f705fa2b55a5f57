// Package analysis runs the fixed per-document sequence
// summarize → tag → detect-language → metadata → filename and assembles
// one index.Record per source file.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tobi-alade/docsorter/internal/extract"
	"github.com/tobi-alade/docsorter/internal/index"
)

// Completer is the single classifier operation the analyzer needs.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Config holds the per-document analysis parameters.
type Config struct {
	SummaryBudget  int  // chars sent for summary and metadata requests
	LanguageBudget int  // chars sent for language detection
	MaxTags        int
	Metadata       bool // enable the structured-metadata sub-step
}

type Analyzer struct {
	cls    Completer
	cfg    Config
	logger *slog.Logger
	now    func() time.Time
}

func NewAnalyzer(cls Completer, cfg Config, logger *slog.Logger) *Analyzer {
	if cfg.SummaryBudget <= 0 {
		cfg.SummaryBudget = 15000
	}
	if cfg.LanguageBudget <= 0 {
		cfg.LanguageBudget = 2000
	}
	if cfg.MaxTags <= 0 {
		cfg.MaxTags = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{cls: cls, cfg: cfg, logger: logger, now: time.Now}
}

// Analyze produces the record for one document. Extraction failure
// short-circuits the record; every classifier sub-step failure only leaves
// its field empty. The method never returns an error: whatever happens,
// the caller gets exactly one record for the file. A panic anywhere in the
// sequence (format libraries do panic on hostile inputs) is confined to
// this document and surfaces as an Error status.
func (a *Analyzer) Analyze(ctx context.Context, path string) (rec index.Record) {
	rec = index.Record{
		SourcePath: path,
		FileName:   filepath.Base(path),
	}
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("analysis.panic", "path", path, "panic", r)
			rec.Status = index.ErrorStatus(fmt.Sprint(r))
		}
	}()

	text, err := extract.Extract(path)
	if err != nil {
		a.logger.Warn("analysis.extract.failed", "path", path, "error", err)
		rec.Status = index.StatusExtractionFailed
		return rec
	}
	if strings.TrimSpace(text) == "" {
		a.logger.Info("analysis.extract.empty", "path", path)
		rec.Status = index.StatusSkipped
		return rec
	}

	rec.Summary = a.summarize(ctx, path, text)
	rec.Tags = a.tag(ctx, path, rec.Summary)
	rec.Language = a.detectLanguage(ctx, path, text)
	if a.cfg.Metadata {
		rec.Meta = a.metadata(ctx, path, text)
	}
	rec.ProposedName = a.proposeName(ctx, path, rec.Tags, rec.Meta)

	// Partial data is acceptable: extraction succeeded, so the record is
	// analyzed no matter how many sub-steps came back empty.
	rec.Status = index.StatusAnalyzed
	return rec
}

func (a *Analyzer) summarize(ctx context.Context, path, text string) []string {
	reply, err := a.cls.Complete(ctx, summaryPrompt, truncate(text, a.cfg.SummaryBudget))
	if err != nil {
		a.logger.Warn("analysis.summary.failed", "path", path, "error", err)
		return nil
	}
	return ParseBullets(reply, 3)
}

func (a *Analyzer) tag(ctx context.Context, path string, summary []string) []string {
	if len(summary) == 0 {
		return nil
	}
	reply, err := a.cls.Complete(ctx, tagsPrompt, "Summary:\n"+strings.Join(summary, " "))
	if err != nil {
		a.logger.Warn("analysis.tags.failed", "path", path, "error", err)
		return nil
	}
	return ParseTags(reply, a.cfg.MaxTags)
}

func (a *Analyzer) detectLanguage(ctx context.Context, path, text string) string {
	reply, err := a.cls.Complete(ctx, languagePrompt, truncate(text, a.cfg.LanguageBudget))
	if err != nil {
		a.logger.Warn("analysis.language.failed", "path", path, "error", err)
		return ""
	}
	return NormalizeLanguage(reply)
}

func (a *Analyzer) metadata(ctx context.Context, path, text string) index.Metadata {
	reply, err := a.cls.Complete(ctx, metadataPrompt, truncate(text, a.cfg.SummaryBudget))
	if err != nil {
		a.logger.Warn("analysis.metadata.failed", "path", path, "error", err)
		return index.Metadata{}
	}
	return ParseMetadata(reply)
}

// proposeName composes the standardized filename. Metadata parts win when
// present; otherwise the classifier refines a tag-based name, with a
// deterministic local fallback when that call fails or returns empty.
func (a *Analyzer) proposeName(ctx context.Context, path string, tags []string, meta index.Metadata) string {
	ext := filepath.Ext(path)

	if a.cfg.Metadata {
		var parts []string
		for _, p := range []string{meta.Authors, meta.Title, meta.Date} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " - ") + ext
		}
	}

	if len(tags) == 0 {
		return ""
	}

	fallback := a.now().Format("2006-01-02") + "_" + tags[0] + ext
	reply, err := a.cls.Complete(ctx, fmt.Sprintf(filenamePrompt, ext), "Tags: "+strings.Join(tags, ", "))
	if err != nil {
		a.logger.Warn("analysis.filename.failed", "path", path, "error", err)
		return fallback
	}
	if name := firstLine(reply); name != "" {
		return name
	}
	return fallback
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
