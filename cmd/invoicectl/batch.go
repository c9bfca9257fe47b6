package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-tracker/internal/async"
	"github.com/joseph-ayodele/invoice-tracker/internal/ingest"
	"github.com/joseph-ayodele/invoice-tracker/internal/pipeline"
)

// batchSummary collects queue results for the final report.
type batchSummary struct {
	mu        sync.Mutex
	processed int
	failed    []string
}

func (s *batchSummary) record(job async.Job, _ pipeline.Result, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.failed = append(s.failed, job.Path)
		return
	}
	s.processed++
}

// newQueue starts workers whose jobs are cancelled together with ctx.
func (a *app) newQueue(ctx context.Context, proc *pipeline.Processor, summary *batchSummary) *async.ProcessorQueue {
	return async.NewProcessorQueue(proc, a.logger,
		async.WithContext(ctx),
		async.WithWorkers(a.cfg.Batch.Workers),
		async.WithQueueSize(a.cfg.Batch.QueueSize),
		async.WithProcessTimeout(a.cfg.Batch.ProcessTimeout),
		async.WithResultHandler(summary.record),
	)
}

func batchCMD(g *globalFlags) *cobra.Command {
	var dir string
	var snapshotDir string
	var includeHidden bool

	var batch = &cobra.Command{
		Use:   "batch",
		Short: "Process every supported document under a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, g)
			if err != nil {
				return err
			}
			defer a.close()

			paths, stats, err := ingest.ScanDirectory(dir, !includeHidden)
			if err != nil {
				return err
			}
			a.logger.Info("scan complete",
				"dir", dir,
				"scanned", stats.Scanned,
				"matched", stats.Matched,
				"skipped", stats.Skipped,
				"failed", stats.Failed,
			)

			cls, closeCls, err := a.classifier(ctx, "")
			if err != nil {
				return err
			}
			defer closeCls()

			if snapshotDir == "" {
				snapshotDir = a.cfg.Output.SnapshotDir
			}
			summary := &batchSummary{}
			q := a.newQueue(ctx, a.processor(cls, pipeline.Options{SnapshotDir: snapshotDir}), summary)
			for _, p := range paths {
				if ctx.Err() != nil {
					break
				}
				if err := q.Enqueue(ctx, async.Job{Path: p}); err != nil {
					a.logger.Error("enqueue failed", "path", p, "error", err)
					break
				}
			}
			// jobs already see the interrupt through ctx; wait for them before the store closes
			q.Shutdown(context.WithoutCancel(ctx))

			fmt.Printf("Batch processing complete!\n")
			fmt.Printf("- Files matched: %d\n", len(paths))
			fmt.Printf("- Files processed: %d\n", summary.processed)
			fmt.Printf("- Failures: %d\n", len(summary.failed))
			for _, p := range summary.failed {
				fmt.Printf("  - %s\n", p)
			}
			return nil
		},
	}
	batch.Flags().StringVar(&dir, "dir", "", "directory to process invoices from (required)")
	batch.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "write one snapshot per document into this directory")
	batch.Flags().BoolVar(&includeHidden, "include-hidden", false, "also process hidden files and directories")
	_ = batch.MarkFlagRequired("dir")
	return batch
}
