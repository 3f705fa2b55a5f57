package plan

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteMovesFiles(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "doc.txt")
	require.NoError(t, os.WriteFile(src, []byte("content"), 0o644))

	dest := filepath.Join(root, "sorted", "renamed.txt")
	p := Plan{Ops: []Op{
		{Kind: KindCreateDir, Dir: filepath.Join(root, "sorted")},
		{Kind: KindMoveFile, Source: src, Dest: dest},
	}}

	rep := NewExecutor(nil).Execute(p)

	assert.Equal(t, Report{Attempted: 2}, rep)
	assert.Equal(t, StateCompleted, rep.State())
	assert.NoFileExists(t, src)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestExecuteSkipsMissingSource(t *testing.T) {
	root := t.TempDir()
	p := Plan{Ops: []Op{
		{Kind: KindMoveFile, Source: filepath.Join(root, "gone.txt"), Dest: filepath.Join(root, "out", "gone.txt")},
	}}

	rep := NewExecutor(nil).Execute(p)

	assert.Equal(t, Report{Attempted: 1, Skipped: 1}, rep)
	assert.Equal(t, StateCompleted, rep.State())
	assert.NoDirExists(t, filepath.Join(root, "out"), "skipped move must not create its directory")
}

func TestExecuteMkdirIdempotent(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "existing")
	require.NoError(t, os.Mkdir(dir, 0o755))

	rep := NewExecutor(nil).Execute(Plan{Ops: []Op{
		{Kind: KindCreateDir, Dir: dir},
		{Kind: KindCreateDir, Dir: dir},
	}})

	assert.Equal(t, Report{Attempted: 2}, rep)
	assert.DirExists(t, dir)
}

func TestExecuteIsolatesFailures(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "ok.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	blocker := filepath.Join(root, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	rep := NewExecutor(nil).Execute(Plan{Ops: []Op{
		{Kind: KindCreateDir, Dir: blocker}, // plain file in the way
		{Kind: KindMoveFile, Source: src, Dest: filepath.Join(root, "out", "ok.txt")},
	}})

	assert.Equal(t, Report{Attempted: 2, Failed: 1}, rep)
	assert.Equal(t, StatePartiallyCompleted, rep.State())
	assert.FileExists(t, filepath.Join(root, "out", "ok.txt"), "later operations still run")
}

func TestDryRunTouchesNothing(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "doc.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	var out bytes.Buffer
	NewExecutor(nil).DryRun(Plan{Ops: []Op{
		{Kind: KindCreateDir, Dir: filepath.Join(root, "sorted")},
		{Kind: KindMoveFile, Source: src, Dest: filepath.Join(root, "sorted", "doc.txt")},
	}}, &out)

	assert.Contains(t, out.String(), "DRY RUN MODE")
	assert.Contains(t, out.String(), "Would execute: mkdir -p")
	assert.FileExists(t, src)
	assert.NoDirExists(t, filepath.Join(root, "sorted"))
}

func TestConfirm(t *testing.T) {
	p := Plan{Ops: []Op{{Kind: KindCreateDir, Dir: "a"}}}

	tests := []struct {
		answer string
		want   bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"sure\n", false},
		{"", false}, // EOF without input
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := Confirm(p, strings.NewReader(tt.answer), &out)
		assert.Equal(t, tt.want, got, "answer %q", tt.answer)
		assert.Contains(t, out.String(), "[y/N]")
	}
}

func TestConfirmPreviewTruncated(t *testing.T) {
	var ops []Op
	for i := 0; i < 8; i++ {
		ops = append(ops, Op{Kind: KindCreateDir, Dir: "d"})
	}
	var out bytes.Buffer
	Confirm(Plan{Ops: ops}, strings.NewReader("n\n"), &out)

	assert.Contains(t, out.String(), "... and 3 more commands")
	assert.Contains(t, out.String(), "Execute 8 commands?")
}
