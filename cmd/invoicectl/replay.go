package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/pipeline"
	"github.com/joseph-ayodele/invoice-tracker/internal/snapshot"
)

func replayCMD(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <snapshot.json>...",
		Short: "Store invoices from saved extraction snapshots without calling Document AI",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, g)
			if err != nil {
				return err
			}
			defer a.close()

			// the classifier is never consulted on this path
			proc := a.processor(nil, pipeline.Options{})
			for _, path := range args {
				rec, err := snapshot.Load(path)
				if err != nil {
					return err
				}
				res, err := proc.ProcessRecord(common.WithSourcePath(common.WithRunID(ctx, ""), path), rec)
				if err != nil {
					return err
				}
				fmt.Printf("%s: stored invoice %d with %d items\n", path, res.InvoiceID, res.Items)
			}
			return nil
		},
	}
}
