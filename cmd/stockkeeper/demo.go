package main

import (
	"github.com/spf13/cobra"

	"github.com/rl1809/stockkeeper/internal/core/service"
)

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the fixed smoke-test sequence and save the result",
		Long: `Starts from an empty inventory, adds 10 apples and 2 bananas, removes
3 apples, prints the apple count and the low-stock items, saves the
inventory and prints the report. Failures are logged, not returned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeRepo, err := a.openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			svc := service.NewInventoryService(a.logger)
			service.RunDemo(cmd.Context(), svc, repo, cmd.OutOrStdout(), a.cfg.LowStockThreshold, a.logger)
			return nil
		},
	}
}
