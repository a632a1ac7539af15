package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vglob/internal/config"
	"github.com/vango-dev/vglob/internal/errors"
	"github.com/vango-dev/vglob/pkg/server"
)

func (c *cli) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the glob HTTP API",
		Long: `Run the HTTP API: /v1/compile, /v1/split, /v1/match, the live
matcher on /v1/ws/match, /healthz and Prometheus metrics on /metrics.

Host, port and defaults come from vglob.json; --addr overrides the address.

Examples:
  vglob serve
  vglob serve --addr :8080
  vglob serve --config ./deploy/vglob.json --dot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				if err := applyAddr(cfg, addr); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg, server.WithLogger(c.logger))
			if err := srv.Run(ctx); err != nil {
				return errors.New("E303").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on, host:port (default from vglob.json)")

	return cmd
}

// applyAddr overrides the configured host and port with addr.
func applyAddr(cfg *config.Config, addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return errors.New("E122").
			WithDetail("--addr must be host:port, got " + strconv.Quote(addr)).
			Wrap(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return errors.New("E122").
			WithDetail("--addr port must be a number, got " + strconv.Quote(portStr))
	}
	cfg.Server.Host = host
	cfg.Server.Port = port
	return cfg.Validate()
}
