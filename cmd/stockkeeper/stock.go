package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rl1809/stockkeeper/internal/core/domain"
	"github.com/rl1809/stockkeeper/internal/core/service"
	"github.com/rl1809/stockkeeper/internal/port"
)

func parseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: quantity must be an integer, got %q", domain.ErrInvalidArgument, raw)
	}
	return qty, nil
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add ITEM QTY",
		Short: "Add QTY units of ITEM, creating it if needed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}

			svc, repo, closeRepo, err := a.loadInventory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			journal := domain.NewJournal()
			if err := svc.Add(args[0], qty, journal); err != nil {
				return err
			}
			if err := svc.Save(cmd.Context(), repo); err != nil {
				return err
			}

			for _, line := range journal.Entries() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ITEM QTY",
		Short: "Remove QTY units of ITEM; the item is dropped when nothing is left",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}

			svc, repo, closeRepo, err := a.loadInventory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			if err := svc.Remove(args[0], qty); err != nil {
				return err
			}
			if err := svc.Save(cmd.Context(), repo); err != nil {
				return err
			}

			left, _ := svc.Quantity(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %d\n", args[0], left)
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "get ITEM",
		Short: "Print the quantity of ITEM (0 when not stocked)",
		Long: `Print the quantity of ITEM (0 when not stocked).

With --details the stored row is printed instead: quantity, save version
and timestamps. Only the mysql backend keeps those.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, repo, closeRepo, err := a.loadInventory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			qty, err := svc.Quantity(args[0])
			if err != nil {
				return err
			}
			if !details {
				fmt.Fprintln(cmd.OutOrStdout(), qty)
				return nil
			}

			reader, ok := repo.(port.StockDetailReader)
			if !ok {
				return fmt.Errorf("%w: backend %q keeps no row details", domain.ErrInvalidArgument, a.cfg.Backend)
			}
			inv, err := reader.GetInventory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			writeStockDetail(cmd.OutOrStdout(), args[0], inv)
			return nil
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "print version and timestamps of the stored row")
	return cmd
}

// writeStockDetail prints one stored row; inv is nil when nothing is stored.
func writeStockDetail(w io.Writer, item string, inv *domain.Inventory) {
	if inv == nil {
		fmt.Fprintf(w, "item:     %s\nquantity: 0\n", item)
		return
	}
	fmt.Fprintf(w, "item:     %s\nquantity: %d\nversion:  %d\ncreated:  %s\nupdated:  %s\n",
		inv.ItemID, inv.Quantity, inv.Version,
		inv.CreatedAt.Format(time.RFC3339), inv.UpdatedAt.Format(time.RFC3339))
}

func newLowCmd(a *app) *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "low",
		Short: "List items whose quantity is below the threshold",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.LowStockThreshold
			}

			svc, _, closeRepo, err := a.loadInventory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			for _, item := range svc.LowStock(threshold) {
				fmt.Fprintln(cmd.OutOrStdout(), item)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "low-stock threshold (default from config, 5)")
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print every item sorted by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, closeRepo, err := a.loadInventory(cmd.Context())
			if err != nil {
				return err
			}
			defer closeRepo()

			return service.WriteReport(cmd.OutOrStdout(), svc.Report(), service.ReportFormat(format))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", string(service.ReportFormatText), "output format: text, json or yaml")
	return cmd
}
