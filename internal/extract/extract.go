// Package extract turns supported document files into plain text.
//
// Supported formats:
//   - .pdf        content-stream text extraction, pages joined with \n
//   - .docx       word/document.xml paragraphs in document order
//   - .txt, .md   plain text, decoded via an ordered list of charsets
//
// Extraction is read-only and never panics past this boundary: every
// failure comes back as an error that unwraps to common.ErrExtraction.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tobi-alade/docsorter/internal/common"
)

// supportedExts is the eligible-file extension set. Files with any other
// extension are not documents as far as the pipeline is concerned.
var supportedExts = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".txt":  {},
	".md":   {},
}

// Supported reports whether path has an eligible extension.
func Supported(path string) bool {
	_, ok := supportedExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Extensions returns the eligible extensions, dot included.
func Extensions() []string {
	return []string{".pdf", ".docx", ".txt", ".md"}
}

// Extract dispatches on the file extension and returns the document text.
func Extract(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		text, err := extractPDF(path)
		if err != nil {
			return "", fmt.Errorf("%w: pdf %s: %v", common.ErrExtraction, path, err)
		}
		return text, nil
	case ".docx":
		text, err := extractDocx(path)
		if err != nil {
			return "", fmt.Errorf("%w: docx %s: %v", common.ErrExtraction, path, err)
		}
		return text, nil
	case ".txt", ".md":
		text, err := extractText(path)
		if err != nil {
			return "", fmt.Errorf("%w: text %s: %v", common.ErrExtraction, path, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("%w: %q", common.ErrUnsupportedType, ext)
	}
}
