package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wichananm65/skincare-storefront/internal/server"
)

const shutdownTimeout = 10 * time.Second

func (c *CLI) newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func (c *CLI) serve(ctx context.Context) error {
	srv, err := server.New(ctx, c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer srv.Close()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Listen)
	g.Go(func() error { return srv.SweepSessions(ctx) })
	g.Go(func() error {
		<-ctx.Done()
		c.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			c.logger.Error("shutdown failed", zap.Error(err))
			return err
		}
		return nil
	})
	return g.Wait()
}
