package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rgehrsitz/isoamt/internal/api"
	"github.com/spf13/cobra"
)

const envAddr = "ISOAMT_ADDR"

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				if env := os.Getenv(envAddr); env != "" {
					addr = env
				}
			}

			tables, err := a.loadTables()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return api.NewServer(tables, a.logger).Run(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "Listen address; defaults to $"+envAddr)
	return cmd
}
