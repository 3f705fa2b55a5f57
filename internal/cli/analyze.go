package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tobi-alade/docsorter/internal/analysis"
	"github.com/tobi-alade/docsorter/internal/classifier"
	"github.com/tobi-alade/docsorter/internal/common"
	"github.com/tobi-alade/docsorter/internal/index"
	"github.com/tobi-alade/docsorter/internal/pipeline"
)

var (
	analyzeOut      string
	analyzeMetadata bool
	analyzeResume   bool
	analyzeWorkers  int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <directory>",
	Short: "Analyze documents and write the index",
	Long: `Walks the directory tree, analyzes every eligible document through
the classifier, and writes one row per file to the index artifact.
Use --metadata to also extract authors/title/date/subject, and --resume to
reuse results the run ledger already holds for these files.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "", "index output path (.csv or .xlsx)")
	analyzeCmd.Flags().BoolVar(&analyzeMetadata, "metadata", false, "extract structured metadata")
	analyzeCmd.Flags().BoolVar(&analyzeResume, "resume", false, "reuse ledger results from earlier runs")
	analyzeCmd.Flags().IntVar(&analyzeWorkers, "workers", 0, "concurrent document analyses (default 1)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := args[0]
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: directory %q does not exist", common.ErrInvalidInput, root)
	}

	cfg := common.LoadConfig()
	if analyzeOut != "" {
		cfg.Artifacts.IndexPath = analyzeOut
	}
	if analyzeWorkers > 0 {
		cfg.Analysis.Workers = analyzeWorkers
	}

	proc, ledger, err := buildProcessor(cfg, analyzeMetadata, analyzeResume)
	if err != nil {
		return err
	}
	defer ledger.Close()

	records, stats, err := proc.Analyze(cmd.Context(), root)
	if err != nil {
		return err
	}

	analyzed := 0
	for _, rec := range records {
		if rec.Status == index.StatusAnalyzed {
			analyzed++
		}
	}
	cmd.Printf("Analysis complete.\n")
	cmd.Printf("- Total files: %d\n", len(records))
	cmd.Printf("- Successfully analyzed: %d\n", analyzed)
	if stats.Reused > 0 {
		cmd.Printf("- Reused from ledger: %d\n", stats.Reused)
	}
	cmd.Printf("- Results saved to: %s\n", cfg.Artifacts.IndexPath)
	return nil
}

// buildProcessor assembles the pipeline from configuration.
func buildProcessor(cfg *common.Config, withMeta, resume bool) (*pipeline.Processor, *index.Ledger, error) {
	logger := slog.Default()

	cls := classifier.NewClient(classifier.Config{
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)

	analyzer := analysis.NewAnalyzer(cls, analysis.Config{
		SummaryBudget:  cfg.Analysis.SummaryBudget,
		LanguageBudget: cfg.Analysis.LanguageBudget,
		MaxTags:        cfg.Analysis.MaxTags,
		Metadata:       withMeta,
	}, logger)

	ledger, err := index.OpenLedger(cfg.Artifacts.LedgerPath, logger)
	if err != nil {
		return nil, nil, err
	}

	indexer := pipeline.NewIndexer(analyzer, ledger, cfg.Analysis.Workers, resume, logger)
	return pipeline.NewProcessor(indexer, cfg.Artifacts, withMeta, logger), ledger, nil
}
