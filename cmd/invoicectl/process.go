package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/pipeline"
)

func processCMD(g *globalFlags) *cobra.Command {
	var snapshotPath string
	var savedDocument string

	var process = &cobra.Command{
		Use:   "process <file>",
		Short: "Extract one invoice document and store it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, g)
			if err != nil {
				return err
			}
			defer a.close()

			cls, closeCls, err := a.classifier(ctx, savedDocument)
			if err != nil {
				return err
			}
			defer closeCls()

			if !cmd.Flags().Changed("snapshot") {
				snapshotPath = a.cfg.Output.SnapshotPath
			}
			proc := a.processor(cls, pipeline.Options{SnapshotPath: snapshotPath})

			res, err := proc.ProcessFile(common.WithRunID(ctx, ""), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Stored invoice %d with %d items (run %s)\n", res.InvoiceID, res.Items, res.RunID)
			if res.SnapshotPath != "" {
				fmt.Printf("Snapshot: %s\n", res.SnapshotPath)
			}
			return nil
		},
	}
	process.Flags().StringVar(&snapshotPath, "snapshot", "", "snapshot file (defaults to output.snapshot_path; empty disables)")
	process.Flags().StringVar(&savedDocument, "document-json", "", "use a saved Document AI response instead of calling the service")
	return process
}
