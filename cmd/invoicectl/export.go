package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/invoice-tracker/internal/export"
)

func exportCMD(g *globalFlags) *cobra.Command {
	var out string

	var exp = &cobra.Command{
		Use:   "export",
		Short: "Write all stored invoices and items to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, g)
			if err != nil {
				return err
			}
			defer a.close()

			data, err := export.NewService(a.invoices, a.logger).ExportInvoicesXLSX(ctx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Printf("Output: %s\n", out)
			return nil
		},
	}
	exp.Flags().StringVar(&out, "out", "invoices.xlsx", "output XLSX file path")
	return exp
}
