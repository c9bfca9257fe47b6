package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initDBCMD(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init-db",
		Short: "Create the invoice_info and item tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), g)
			if err != nil {
				return err
			}
			defer a.close()
			fmt.Printf("Tables ready on %s\n", a.store.Host)
			return nil
		},
	}
}
