package pipeline

import (
	"context"
	"log/slog"

	"github.com/tobi-alade/docsorter/internal/common"
	"github.com/tobi-alade/docsorter/internal/index"
	"github.com/tobi-alade/docsorter/internal/plan"
	"github.com/tobi-alade/docsorter/internal/taxonomy"
)

// Processor sequences the file-backed stages. Analyze writes the index
// artifact; Synthesize and BuildPlan each re-read their inputs from disk
// rather than from memory, which is what makes a run restartable at any
// stage boundary.
type Processor struct {
	indexer   *Indexer
	artifacts common.ArtifactsConfig
	withMeta  bool
	logger    *slog.Logger
}

func NewProcessor(indexer *Indexer, artifacts common.ArtifactsConfig, withMeta bool, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		indexer:   indexer,
		artifacts: artifacts,
		withMeta:  withMeta,
		logger:    logger,
	}
}

// Analyze runs the indexing stage over root and persists the index
// artifact. Every enumerated eligible file yields exactly one row,
// extraction failures included, so operators can audit them.
func (p *Processor) Analyze(ctx context.Context, root string) ([]index.Record, Stats, error) {
	records, stats, err := p.indexer.BuildIndex(ctx, root)
	if err != nil {
		return records, stats, err
	}
	if err := index.Write(p.artifacts.IndexPath, records, p.withMeta); err != nil {
		return records, stats, common.WrapError(err, "persist index")
	}
	p.logger.Info("stage.analyze.done", "index", p.artifacts.IndexPath, "rows", len(records))
	return records, stats, nil
}

// Synthesize reads the persisted index, derives the taxonomy and persists
// it.
func (p *Processor) Synthesize() (taxonomy.Taxonomy, error) {
	records, err := index.Read(p.artifacts.IndexPath)
	if err != nil {
		return nil, err
	}
	tax := taxonomy.Build(records)
	if err := tax.Save(p.artifacts.StructurePath); err != nil {
		return nil, common.WrapError(err, "persist taxonomy")
	}
	p.logger.Info("stage.synthesize.done",
		"structure", p.artifacts.StructurePath,
		"categories", len(tax),
	)
	return tax, nil
}

// BuildPlan reads the persisted index and taxonomy, generates the
// execution plan and persists its auditable text form.
func (p *Processor) BuildPlan() (plan.Plan, error) {
	records, err := index.Read(p.artifacts.IndexPath)
	if err != nil {
		return plan.Plan{}, err
	}
	tax, err := taxonomy.Load(p.artifacts.StructurePath)
	if err != nil {
		return plan.Plan{}, err
	}
	pl := plan.Generate(records, tax)
	if err := pl.Save(p.artifacts.PlanPath); err != nil {
		return plan.Plan{}, common.WrapError(err, "persist plan")
	}
	p.logger.Info("stage.plan.done", "plan", p.artifacts.PlanPath, "operations", len(pl.Ops))
	return pl, nil
}
