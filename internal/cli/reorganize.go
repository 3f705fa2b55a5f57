package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobi-alade/docsorter/internal/common"
	"github.com/tobi-alade/docsorter/internal/plan"
)

var (
	reorganizeDryRun  bool
	reorganizeYes     bool
	reorganizeResume  bool
	reorganizeWorkers int
)

var reorganizeCmd = &cobra.Command{
	Use:   "reorganize <directory>",
	Short: "Analyze, plan and execute a reorganization",
	Long: `Runs the full pipeline: analysis with metadata extraction, taxonomy
synthesis, plan generation, and, after explicit confirmation, plan
execution. Use --dry-run to print the intended operations without
confirmation or any filesystem change.`,
	Args: cobra.ExactArgs(1),
	RunE: runReorganize,
}

func init() {
	reorganizeCmd.Flags().BoolVar(&reorganizeDryRun, "dry-run", false, "print operations without executing")
	reorganizeCmd.Flags().BoolVar(&reorganizeYes, "yes", false, "skip the confirmation prompt")
	reorganizeCmd.Flags().BoolVar(&reorganizeResume, "resume", false, "reuse ledger results from earlier runs")
	reorganizeCmd.Flags().IntVar(&reorganizeWorkers, "workers", 0, "concurrent document analyses (default 1)")
	rootCmd.AddCommand(reorganizeCmd)
}

func runReorganize(cmd *cobra.Command, args []string) error {
	root := args[0]
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: directory %q does not exist", common.ErrInvalidInput, root)
	}

	cfg := common.LoadConfig()
	if reorganizeWorkers > 0 {
		cfg.Analysis.Workers = reorganizeWorkers
	}

	// Reorganization always extracts metadata; standardized names are
	// built from it when available.
	proc, ledger, err := buildProcessor(cfg, true, reorganizeResume)
	if err != nil {
		return err
	}
	defer ledger.Close()

	cmd.Println("--- Step 1: Document Analysis ---")
	if _, _, err := proc.Analyze(cmd.Context(), root); err != nil {
		return err
	}

	cmd.Println("--- Step 2: Architecture Synthesis ---")
	tax, err := proc.Synthesize()
	if err != nil {
		return err
	}
	if len(tax) == 0 {
		return fmt.Errorf("no valid folder structure could be derived")
	}

	cmd.Println("--- Step 3: Plan Generation ---")
	if _, err := proc.BuildPlan(); err != nil {
		return err
	}

	cmd.Println("--- Step 4: Execution ---")
	// Re-parse the persisted artifact: what executes is exactly what the
	// operator can audit on disk.
	pl, err := plan.Load(cfg.Artifacts.PlanPath)
	if err != nil {
		return err
	}

	executor := plan.NewExecutor(slog.Default())

	if reorganizeDryRun {
		executor.DryRun(pl, cmd.OutOrStdout())
		return nil
	}

	if !reorganizeYes && !plan.Confirm(pl, cmd.InOrStdin(), cmd.OutOrStdout()) {
		cmd.Println("Execution aborted by user.")
		return nil
	}

	report := executor.Execute(pl)
	cmd.Printf("Reorganization %s.\n", report.State())
	cmd.Printf("- Operations attempted: %d\n", report.Attempted)
	cmd.Printf("- Skipped (missing source): %d\n", report.Skipped)
	cmd.Printf("- Failed: %d\n", report.Failed)
	return nil
}
