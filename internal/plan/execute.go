package plan

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// State is the terminal state of a plan execution.
type State string

const (
	StateAborted            State = "Aborted"
	StateCompleted          State = "Completed"
	StatePartiallyCompleted State = "PartiallyCompleted"
)

// Report summarizes one execution: how many operations were attempted,
// how many were skipped because their source vanished, and how many
// failed outright.
type Report struct {
	Attempted int
	Skipped   int
	Failed    int
}

// State derives the terminal state from the counters.
func (r Report) State() State {
	if r.Failed > 0 {
		return StatePartiallyCompleted
	}
	return StateCompleted
}

// Executor applies a plan to the filesystem, strictly in plan order and
// single-threaded. Each operation's failure is isolated: it is counted
// and the remaining plan still runs.
type Executor struct {
	logger *slog.Logger
}

func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{logger: logger}
}

// Execute applies every operation in order. Directory creation is
// idempotent; a move whose source no longer exists is logged and skipped.
func (e *Executor) Execute(p Plan) Report {
	var rep Report
	for _, op := range p.Ops {
		rep.Attempted++
		switch op.Kind {
		case KindCreateDir:
			if err := os.MkdirAll(op.Dir, 0o755); err != nil {
				e.logger.Error("execute.mkdir.failed", "dir", op.Dir, "error", err)
				rep.Failed++
			}
		case KindMoveFile:
			if _, err := os.Stat(op.Source); os.IsNotExist(err) {
				e.logger.Warn("execute.move.source_missing", "source", op.Source)
				rep.Skipped++
				continue
			}
			if dir := filepath.Dir(op.Dest); dir != "" && dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					e.logger.Error("execute.move.mkdir_failed", "dir", dir, "error", err)
					rep.Failed++
					continue
				}
			}
			if err := os.Rename(op.Source, op.Dest); err != nil {
				e.logger.Error("execute.move.failed", "source", op.Source, "dest", op.Dest, "error", err)
				rep.Failed++
			}
		}
	}
	return rep
}

// DryRun prints every operation without touching the filesystem.
func (e *Executor) DryRun(p Plan, w io.Writer) {
	fmt.Fprintln(w, "--- DRY RUN MODE ---")
	for _, op := range p.Ops {
		fmt.Fprintf(w, "Would execute: %s\n", op)
	}
}

// Confirm previews the plan and asks for an explicit go-ahead. Only "y"
// or "yes" (case-insensitive) confirms; anything else aborts with no
// filesystem mutation.
func Confirm(p Plan, in io.Reader, out io.Writer) bool {
	const preview = 5
	fmt.Fprintln(out, "--- EXECUTION PLAN PREVIEW ---")
	for i, op := range p.Ops {
		if i == preview {
			fmt.Fprintf(out, "  ... and %d more commands\n", len(p.Ops)-preview)
			break
		}
		fmt.Fprintf(out, "  %s\n", op)
	}
	fmt.Fprintf(out, "\nExecute %d commands? [y/N]: ", len(p.Ops))

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}
