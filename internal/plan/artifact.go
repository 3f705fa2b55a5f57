package plan

import (
	"fmt"
	"os"
	"strings"

	"github.com/tobi-alade/docsorter/internal/common"
)

// Render serializes the plan as the human-auditable markdown artifact:
// shell-like mkdir/mv lines, single-quoted paths, inside a fenced block.
func (p Plan) Render() string {
	var sb strings.Builder
	sb.WriteString("# Document Reorganization Plan\n\n")
	sb.WriteString("## Commands to execute:\n\n")
	sb.WriteString("```bash\n")
	for _, op := range p.Ops {
		sb.WriteString(op.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("```\n")
	return sb.String()
}

// Save writes the plan artifact to path.
func (p Plan) Save(path string) error {
	if err := os.WriteFile(path, []byte(p.Render()), 0o644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// Load reads and parses a plan artifact.
func Load(path string) (Plan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read plan: %w", err)
	}
	return Parse(string(b))
}

// Parse recovers the typed plan from its text form. Commands outside a
// fenced block are accepted too, so hand-trimmed plans still execute. Any
// line that looks like a command but cannot be parsed unambiguously is a
// fatal common.ErrPlanParse: the executor refuses to run a plan it does
// not fully understand.
func Parse(text string) (Plan, error) {
	var ops []Op
	inFence := false
	sawFence := strings.Contains(text, "```")

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "```"):
			inFence = !inFence
			continue
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case sawFence && !inFence:
			continue
		}

		switch {
		case strings.HasPrefix(line, "mkdir"):
			args, err := quotedArgs(line)
			if err != nil || len(args) != 1 {
				return Plan{}, fmt.Errorf("%w: %q", common.ErrPlanParse, line)
			}
			ops = append(ops, Op{Kind: KindCreateDir, Dir: args[0]})
		case strings.HasPrefix(line, "mv"):
			args, err := quotedArgs(line)
			if err != nil || len(args) != 2 {
				return Plan{}, fmt.Errorf("%w: %q", common.ErrPlanParse, line)
			}
			ops = append(ops, Op{Kind: KindMoveFile, Source: args[0], Dest: args[1]})
		default:
			return Plan{}, fmt.Errorf("%w: unrecognized command %q", common.ErrPlanParse, line)
		}
	}

	if len(ops) == 0 {
		return Plan{}, fmt.Errorf("%w: no operations found", common.ErrPlanParse)
	}
	return Plan{Ops: ops}, nil
}

// quotedArgs extracts the single-quoted arguments of a command line,
// tolerating embedded spaces inside the quotes.
func quotedArgs(line string) ([]string, error) {
	var args []string
	for {
		start := strings.IndexByte(line, '\'')
		if start < 0 {
			break
		}
		rest := line[start+1:]
		end := strings.IndexByte(rest, '\'')
		if end < 0 {
			return nil, fmt.Errorf("unterminated quote")
		}
		args = append(args, rest[:end])
		line = rest[end+1:]
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no quoted arguments")
	}
	return args, nil
}
