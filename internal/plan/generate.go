package plan

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/tobi-alade/docsorter/internal/index"
	"github.com/tobi-alade/docsorter/internal/taxonomy"
)

// Generate builds the execution plan from the index and the taxonomy.
// Every organizable record whose primary tag survived taxonomy building
// yields one move under a sanitized destination name; each distinct
// sanitized folder yields exactly one directory creation, and all
// creations precede all moves. A record whose tag or name sanitizes to
// nothing is left where it is.
func Generate(records []index.Record, tax taxonomy.Taxonomy) Plan {
	seen := map[string]struct{}{}
	var dirs []Op
	var moves []Op

	for _, rec := range records {
		if !rec.Organizable() {
			continue
		}
		if _, ok := tax[rec.PrimaryTag()]; !ok {
			continue
		}
		folder := SanitizeFolder(rec.PrimaryTag())
		if folder == "" {
			continue
		}

		name := SanitizeName(rec.ProposedName)
		if name == "" {
			name = SanitizeName(rec.FileName)
		}
		if name == "" {
			continue
		}

		if _, ok := seen[folder]; !ok {
			seen[folder] = struct{}{}
			dirs = append(dirs, Op{Kind: KindCreateDir, Dir: folder})
		}

		moves = append(moves, Op{
			Kind:   KindMoveFile,
			Source: rec.SourcePath,
			Dest:   filepath.Join(folder, name),
		})
	}

	return Plan{Ops: append(dirs, moves...)}
}

// SanitizeName makes a classifier-proposed filename safe as a single path
// element: quotes would break the plan's text form, separators and dot
// directories would let the file land outside its tag folder.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, "'", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, `\`, "_")
	name = strings.TrimSpace(name)
	if name == "." || name == ".." {
		return ""
	}
	return name
}

// SanitizeFolder makes a tag safe to use as a directory name: only
// alphanumerics, spaces, hyphens and underscores survive, and spaces
// become underscores.
func SanitizeFolder(tag string) string {
	var sb strings.Builder
	for _, r := range tag {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteRune(r)
		}
	}
	return strings.ReplaceAll(strings.TrimSpace(sb.String()), " ", "_")
}
