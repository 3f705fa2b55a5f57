// Package plan models the file-reorganization plan as a typed sequence of
// operations. The markdown artifact is only a serialization for operator
// audit; generation, validation and execution all work on the typed form.
package plan

import "fmt"

// Kind discriminates plan operations.
type Kind int

const (
	KindCreateDir Kind = iota
	KindMoveFile
)

// Op is a single plan step: either create a directory or move a file.
type Op struct {
	Kind   Kind
	Dir    string // KindCreateDir
	Source string // KindMoveFile
	Dest   string // KindMoveFile
}

func (o Op) String() string {
	if o.Kind == KindCreateDir {
		return fmt.Sprintf("mkdir -p '%s'", o.Dir)
	}
	return fmt.Sprintf("mv '%s' '%s'", o.Source, o.Dest)
}

// Plan is an ordered operation sequence. Directory creations always come
// before any move that lands in them.
type Plan struct {
	Ops []Op
}

// Empty reports whether the plan holds no operations.
func (p Plan) Empty() bool {
	return len(p.Ops) == 0
}
