package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/rl1809/stockkeeper/internal/adapter/handler"
	"github.com/rl1809/stockkeeper/internal/adapter/handler/rpc"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var saveOnExit bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the inventory over HTTP and gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context(), saveOnExit)
		},
	}
	cmd.Flags().BoolVar(&saveOnExit, "save-on-exit", true, "save the inventory when the server stops")
	return cmd
}

func (a *app) serve(ctx context.Context, saveOnExit bool) error {
	svc, repo, closeRepo, err := a.loadInventory(ctx)
	if err != nil {
		return err
	}
	defer closeRepo()

	inventory := handler.NewLockedInventory(svc, repo)

	httpServer := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           handler.NewHTTPHandler(inventory, a.cfg.LowStockThreshold, a.logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcServer := grpc.NewServer(rpc.ServerOptions()...)
	rpc.RegisterInventoryServer(grpcServer, handler.NewGRPCHandler(inventory, a.logger))

	lis, err := net.Listen("tcp", a.cfg.GRPC.Addr)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Info("gRPC server listening", zap.String("addr", a.cfg.GRPC.Addr))
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		a.logger.Info("HTTP server listening", zap.String("addr", a.cfg.HTTP.Addr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("HTTP shutdown", zap.Error(err))
		}
		a.logger.Info("HTTP server stopped")

		grpcServer.GracefulStop()
		a.logger.Info("gRPC server stopped")
		return nil
	})

	serveErr := g.Wait()

	if saveOnExit {
		saveCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if _, err := inventory.Save(saveCtx); err != nil {
			return errors.Join(serveErr, err)
		}
	}
	return serveErr
}
