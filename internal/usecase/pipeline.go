package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"LovdataScanner/internal/classify"
	"LovdataScanner/internal/domain"
	"LovdataScanner/internal/lovdata"
	"LovdataScanner/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.ArchiveSource
	Reconciler ports.LedgerReconciler
	Repository ports.RunRepository
	Notifier   ports.Notifier
	Logger     *slog.Logger

	LawsPackage        string
	RegulationsPackage string

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Pipeline implements the scrape-classify-reconcile workflow. One call is one
// run: single-threaded, run-to-completion, exactly one ledger read and one
// batched write pass.
type Pipeline struct {
	source     ports.ArchiveSource
	reconciler ports.LedgerReconciler
	repository ports.RunRepository
	notifier   ports.Notifier
	logger     *slog.Logger

	lawsPackage string
	regsPackage string
	now         func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	lawsPkg := deps.LawsPackage
	if lawsPkg == "" {
		lawsPkg = lovdata.PackageLaws
	}
	regsPkg := deps.RegulationsPackage
	if regsPkg == "" {
		regsPkg = lovdata.PackageRegulations
	}

	return &Pipeline{
		source:      deps.Source,
		reconciler:  deps.Reconciler,
		repository:  deps.Repository,
		notifier:    deps.Notifier,
		logger:      logger,
		lawsPackage: lawsPkg,
		regsPackage: regsPkg,
		now:         now,
	}
}

// Run executes one full scrape run and returns the summary. Per-document
// parse failures are logged and skipped; ledger failures abort the run.
func (p *Pipeline) Run(ctx context.Context) (domain.RunSummary, error) {
	started := p.now()

	lawFiles, err := p.source.FetchPackage(ctx, p.lawsPackage)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("fetch laws package: %w", err)
	}
	regFiles, err := p.source.FetchPackage(ctx, p.regsPackage)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("fetch regulations package: %w", err)
	}

	regsByLaw, regDocs := p.mapRegulations(regFiles)
	candidates := p.parseLaws(lawFiles, started)

	kept := make([]domain.Document, 0, len(candidates))
	for _, law := range candidates {
		if law.Status == domain.StatusInForce || law.Status == domain.StatusAmbiguous {
			kept = append(kept, law)
		}
	}
	sortByDateDesc(kept)
	p.logger.Info("laws classified", "parsed", len(candidates), "kept", len(kept))

	outcome, err := p.reconciler.Reconcile(ctx, kept, regsByLaw)
	if err != nil {
		return domain.RunSummary{}, fmt.Errorf("reconcile ledger: %w", err)
	}

	summary := domain.RunSummary{
		LawsKept:        len(kept),
		RowsWritten:     outcome.RowsWritten,
		AmbiguousMarked: outcome.AmbiguousMarked,
		StaleMarked:     outcome.StaleMarked,
		StartedAt:       started,
		FinishedAt:      p.now(),
	}

	if p.repository != nil {
		if err := p.repository.SaveClassifications(ctx, append(candidates, regDocs...)); err != nil {
			p.logger.Error("persist classifications", "error", err)
		}
		if err := p.repository.SaveRun(ctx, summary); err != nil {
			p.logger.Error("persist run summary", "error", err)
		}
	}

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, buildDigest(summary)); err != nil {
			p.logger.Error("publish digest", "error", err)
		}
	}

	return summary, nil
}

// mapRegulations parses every regulation and indexes it under each law it
// references. A regulation referencing several laws appears under each of
// them.
func (p *Pipeline) mapRegulations(files map[string][]byte) (map[string][]domain.Document, []domain.Document) {
	regsByLaw := map[string][]domain.Document{}
	var docs []domain.Document

	for _, name := range sortedKeys(files) {
		raw := files[name]
		doc, err := lovdata.ParseRegulation(name, raw)
		if err != nil {
			p.logger.Warn("regulation parse failed, skipping", "file", name, "error", err)
			continue
		}
		docs = append(docs, doc)

		for _, lawID := range lovdata.LawReferences(raw) {
			regsByLaw[lawID] = append(regsByLaw[lawID], doc)
		}
	}

	return regsByLaw, docs
}

func (p *Pipeline) parseLaws(files map[string][]byte, today time.Time) []domain.Document {
	var laws []domain.Document
	for _, name := range sortedKeys(files) {
		law, err := lovdata.ParseLaw(name, files[name], today)
		if err != nil {
			p.logger.Warn("law parse failed, skipping", "file", name, "error", err)
			continue
		}
		laws = append(laws, law)
	}
	return laws
}

// sortByDateDesc orders newest first; undated or unparseable documents sink
// to the bottom. The sort is stable so ties keep archive order.
func sortByDateDesc(docs []domain.Document) {
	key := func(doc domain.Document) time.Time {
		d, ok := classify.ParseISODate(doc.Date)
		if !ok {
			return time.Time{}
		}
		return d
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return key(docs[i]).After(key(docs[j]))
	})
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func buildDigest(s domain.RunSummary) string {
	return fmt.Sprintf(
		"Lovdata scrape finished\nlaws kept: %d\nrows written: %d\nambiguous marked: %d\nstale marked: %d",
		s.LawsKept, s.RowsWritten, s.AmbiguousMarked, s.StaleMarked)
}
