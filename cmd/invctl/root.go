package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/stockledger-api/pkg/config"
)

// loadConfig se reemplaza en pruebas.
var loadConfig = config.Load

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "invctl",
		Short:         "Operación de StockLedger: migraciones, reportes y tokens",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newMigrateCmd(), newReorderCmd(), newTokenCmd())
	return root
}
