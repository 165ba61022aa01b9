package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rl1809/stockkeeper/internal/adapter/storage"
	"github.com/rl1809/stockkeeper/internal/adapter/watcher"
	"github.com/rl1809/stockkeeper/internal/config"
	"github.com/rl1809/stockkeeper/internal/core/service"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Reload the inventory file whenever it changes and print the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Backend != config.BackendFile {
				return fmt.Errorf("watch only works with the file backend, not %q", a.cfg.Backend)
			}

			repo := storage.NewJSONFileAdapter(a.cfg.DataFile, a.logger)
			svc := service.NewInventoryService(a.logger)
			out := cmd.OutOrStdout()

			reload := func(ctx context.Context) error {
				if err := svc.Load(ctx, repo); err != nil {
					return err
				}
				return service.WriteReport(out, svc.Report(), service.ReportFormatText)
			}

			if err := reload(cmd.Context()); err != nil {
				return err
			}
			return watcher.NewFileWatcher(repo.Path(), reload, a.logger).Run(cmd.Context())
		},
	}
}
