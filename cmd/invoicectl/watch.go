package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-tracker/internal/async"
	"github.com/joseph-ayodele/invoice-tracker/internal/ingest"
	"github.com/joseph-ayodele/invoice-tracker/internal/pipeline"
)

func watchCMD(g *globalFlags) *cobra.Command {
	var dirs []string
	var snapshotDir string
	var initialScan bool
	var debounce time.Duration

	var watch = &cobra.Command{
		Use:   "watch",
		Short: "Process invoice documents as they appear under the given directories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, g)
			if err != nil {
				return err
			}
			defer a.close()

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
			defer q.Shutdown(context.WithoutCancel(ctx))

			events, errs, err := ingest.StartWatcher(ctx, ingest.WatchConfig{
				Roots:       dirs,
				InitialScan: initialScan,
				Debounce:    debounce,
				Logger:      a.logger,
			})
			if err != nil {
				return err
			}
			a.logger.Info("watching for invoices", "dirs", dirs)

			for {
				select {
				case p, ok := <-events:
					if !ok {
						return nil
					}
					if err := q.Enqueue(ctx, async.Job{Path: p}); err != nil {
						a.logger.Error("enqueue failed", "path", p, "error", err)
					}
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					a.logger.Warn("watch error", "error", err)
				}
			}
		},
	}
	watch.Flags().StringSliceVar(&dirs, "dir", nil, "directory to watch (repeatable)")
	watch.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "write one snapshot per document into this directory")
	watch.Flags().BoolVar(&initialScan, "initial-scan", true, "process documents already present")
	watch.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "coalesce bursts of file events")
	_ = watch.MarkFlagRequired("dir")
	return watch
}
