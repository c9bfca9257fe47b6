package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/docai"
	"github.com/joseph-ayodele/invoice-tracker/internal/extract"
	"github.com/joseph-ayodele/invoice-tracker/internal/ingest"
	"github.com/joseph-ayodele/invoice-tracker/internal/mapping"
	"github.com/joseph-ayodele/invoice-tracker/internal/repository"
	"github.com/joseph-ayodele/invoice-tracker/internal/snapshot"
)

// Options controls where extraction snapshots are written. SnapshotDir takes
// precedence and yields one file per document; SnapshotPath is overwritten on
// every run. With both empty no snapshot is written.
type Options struct {
	SnapshotPath string
	SnapshotDir  string
}

// Result describes one processed document.
type Result struct {
	Path         string
	RunID        string
	Status       constants.DocStatus
	InvoiceID    int64
	Items        int
	SnapshotPath string
	Duplicates   []string
}

// Processor coordinates classification, flattening, projection and persistence
// of a single invoice document.
type Processor struct {
	logger     *slog.Logger
	classifier docai.Classifier
	invoices   repository.InvoiceRepository
	opts       Options
}

func NewProcessor(logger *slog.Logger, classifier docai.Classifier, invoices repository.InvoiceRepository, opts Options) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{logger: logger, classifier: classifier, invoices: invoices, opts: opts}
}

// ProcessFile runs the whole pipeline for path. On failure the returned result
// has status FAILED and the error is a *common.StageError naming the step.
func (p *Processor) ProcessFile(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	ctx = ensureRunID(common.WithSourcePath(ctx, path))
	res := Result{Path: path, RunID: common.RunIDFromContext(ctx)}
	log := p.logger.With("path", path, "run_id", res.RunID)

	src, err := ingest.ReadDocument(path)
	if err != nil {
		log.Error("processor.ingest.failed", "err", err)
		return p.fail(res, constants.StageIngest, err)
	}

	doc, err := p.classifier.Process(ctx, src.Content, src.MimeType)
	if err != nil {
		log.Error("processor.classify.failed", "mime", src.MimeType, "err", err)
		return p.fail(res, constants.StageClassify, err)
	}

	rec, err := extract.Flatten(doc)
	if err != nil {
		log.Error("processor.flatten.failed", "err", err)
		return p.fail(res, constants.StageFlatten, err)
	}
	res.Status = constants.DocStatusExtracted
	log.Debug("processor.flatten.ok",
		"entities", len(rec.Entities),
		"form_fields", len(rec.FormFields),
		"sha256", src.HashHex,
	)

	if snap := p.snapshotPath(path); snap != "" {
		if err := snapshot.Save(snap, rec); err != nil {
			log.Error("processor.snapshot.failed", "snapshot", snap, "err", err)
			return p.fail(res, constants.StageSnapshot, err)
		}
		res.SnapshotPath = snap
	}

	persisted, err := p.ProcessRecord(ctx, rec)
	persisted.SnapshotPath = res.SnapshotPath
	if err != nil {
		return persisted, err
	}

	log.Info("processor.ok",
		"invoice_id", persisted.InvoiceID,
		"items", persisted.Items,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return persisted, nil
}

// ProcessRecord projects an already extracted record and persists it. It is
// the entry point for replaying saved snapshots.
func (p *Processor) ProcessRecord(ctx context.Context, rec extract.ExtractionRecord) (Result, error) {
	ctx = ensureRunID(ctx)
	path := common.SourcePathFromContext(ctx)
	res := Result{Path: path, RunID: common.RunIDFromContext(ctx), Status: constants.DocStatusExtracted}
	log := p.logger.With("path", path, "run_id", res.RunID)

	header, items := mapping.Project(rec)
	res.Status = constants.DocStatusProjected
	res.Items = len(items)
	if dups := mapping.Duplicates(rec); len(dups) > 0 {
		res.Duplicates = dups
		log.Warn("processor.project.duplicates", "types", dups)
	}

	id, err := p.invoices.Persist(ctx, header, items)
	if err != nil {
		log.Error("processor.persist.failed", "err", err)
		return p.fail(res, constants.StagePersist, err)
	}
	res.InvoiceID = id
	res.Status = constants.DocStatusPersisted
	log.Debug("processor.persist.ok", "invoice_id", id, "items", len(items))
	return res, nil
}

func (p *Processor) snapshotPath(source string) string {
	if p.opts.SnapshotDir != "" {
		return snapshot.PathFor(p.opts.SnapshotDir, source)
	}
	return p.opts.SnapshotPath
}

func (p *Processor) fail(res Result, stage constants.Stage, err error) (Result, error) {
	res.Status = constants.DocStatusFailed
	return res, &common.StageError{Stage: stage, Path: res.Path, Err: err}
}

func ensureRunID(ctx context.Context) context.Context {
	if common.RunIDFromContext(ctx) != "" {
		return ctx
	}
	return common.WithRunID(ctx, "")
}
