// Package cli wires the docsorter commands: analyze, reorganize, version.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docsorter",
	Short: "Analyze and organize document folders with an LLM",
	Long: `docsorter scans a directory of documents (PDF, DOCX, TXT, MD),
derives a summary, topic tags, language and a standardized filename for
each one via a local Ollama model, records everything in a tabular index,
and can reorganize the files into tag-based folders after you approve the
generated plan.`,
	SilenceUsage: true,
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
