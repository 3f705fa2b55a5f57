package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tobi-alade/docsorter/internal/index"
)

func TestBuild(t *testing.T) {
	records := []index.Record{
		{SourcePath: "/docs/a.txt", Status: index.StatusAnalyzed, Tags: []string{"alpha", "other"}},
		{SourcePath: "/docs/b.txt", Status: index.StatusAnalyzed, Tags: []string{"alpha"}},
		{SourcePath: "/docs/c.txt", Status: index.StatusAnalyzed, Tags: []string{"beta"}},
		{SourcePath: "/docs/d.txt", Status: index.StatusAnalyzed}, // no tags
		{SourcePath: "/docs/e.pdf", Status: index.StatusExtractionFailed, Tags: []string{"alpha"}},
		{SourcePath: "/docs/f.md", Status: index.StatusSkipped},
	}

	tax := Build(records)

	assert.Equal(t, Taxonomy{
		"alpha": {"/docs/a.txt", "/docs/b.txt"},
		"beta":  {"/docs/c.txt"},
	}, tax)
}

func TestBuildEmptyInput(t *testing.T) {
	assert.Empty(t, Build(nil))
	assert.Empty(t, Build([]index.Record{{Status: index.StatusSkipped}}))
}

func TestBuildDeterministic(t *testing.T) {
	records := []index.Record{
		{SourcePath: "/a", Status: index.StatusAnalyzed, Tags: []string{"x"}},
		{SourcePath: "/b", Status: index.StatusAnalyzed, Tags: []string{"y"}},
	}
	assert.Equal(t, Build(records), Build(records))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folder_structure.json")
	tax := Taxonomy{
		"research": {"/docs/a.pdf", "/docs/b.pdf"},
		"invoices": {"/docs/c.pdf"},
	}

	require.NoError(t, tax.Save(path))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, tax, got)

	// Stable bytes: saving the same taxonomy twice is byte-identical.
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, tax.Save(path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
