package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/rl1809/stockkeeper/internal/port"
)

// RunDemo exercises the store end to end: two adds, a partial removal,
// a quantity lookup, a low-stock scan, a save and the report. Errors are
// logged and stop the sequence, they are never returned.
func RunDemo(ctx context.Context, svc *InventoryService, repo port.SnapshotRepository, out io.Writer, threshold int, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := runDemo(ctx, svc, repo, out, threshold); err != nil {
		logger.Error("error during example run", zap.Error(err))
	}
}

func runDemo(ctx context.Context, svc *InventoryService, repo port.SnapshotRepository, out io.Writer, threshold int) error {
	if err := svc.Add("apple", 10, nil); err != nil {
		return err
	}
	if err := svc.Add("banana", 2, nil); err != nil {
		return err
	}
	if err := svc.Remove("apple", 3); err != nil {
		return err
	}

	qty, err := svc.Quantity("apple")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Apple stock:", qty)
	fmt.Fprintln(out, "Low items:", svc.LowStock(threshold))

	if err := svc.Save(ctx, repo); err != nil {
		return err
	}
	return WriteReport(out, svc.Report(), ReportFormatText)
}
