package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/stockledger-api/internal/application/reporting"
	"github.com/jhoicas/stockledger-api/internal/domain/report"
	"github.com/jhoicas/stockledger-api/internal/domain/repository"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/postgres"
)

func newReorderCmd() *cobra.Command {
	var demo bool
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Lista los productos en o por debajo de su nivel de reorden",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := c.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			var repo repository.ReorderRepository
			switch {
			case demo || !cfg.DB.Enabled():
				repo = memory.NewSeeded(time.Now()).Reorder()
			default:
				pool, err := postgres.NewPool(ctx, cfg.DB)
				if err != nil {
					return err
				}
				defer pool.Close()
				repo = postgres.NewReorderRepository(pool)
			}

			uc := reporting.NewReorderUseCase(repo, report.ReorderPolicy{
				LeadTimeDays:       cfg.Report.LeadTimeDays,
				WindowDays:         cfg.Report.UsageWindowDays,
				DefaultSafetyStock: cfg.Report.DefaultSafetyStock,
			})
			items, err := uc.Flagged(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRODUCTO\tCATEGORÍA\tSTOCK\tUSO DIARIO\tNIVEL")
			for _, it := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%.2f\n",
					it.ProductID, it.ProductName, it.CategoryName, it.CurrentQuantity, it.AverageDailyUsage, it.ReorderLevel)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "%d producto(s) por reabastecer\n", len(items))
			return nil
		},
	}
	cmd.Flags().BoolVar(&demo, "demo", false, "usar el almacén en memoria con datos de demostración")
	return cmd
}
