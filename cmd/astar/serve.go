package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/natevvv/grid-astar/pkg/server/openapi_server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gen, seed := newGenerator(cfg)
			g, err := loadGrid(ctx, cfg, gen)
			if err != nil {
				return err
			}
			fmt.Printf("seed: %v, map: %v x %v\n", seed, g.Rows(), g.Cols())

			service := openapi_server.NewDefaultApiService(g, openapi_server.ServiceConfig{
				CostFactor: cfg.Search.CostFactor,
				DebugLevel: cfg.Search.DebugLevel,
			})
			controller := openapi_server.NewDefaultApiController(service)
			server := &http.Server{
				Addr:    cfg.Server.Addr,
				Handler: openapi_server.NewRouter(controller),
			}

			group, groupCtx := errgroup.WithContext(ctx)
			group.Go(func() error {
				log.Printf("Listening on %v\n", cfg.Server.Addr)
				if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			group.Go(func() error {
				<-groupCtx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			})
			return group.Wait()
		},
	}
	cmd.Flags().String("addr", "", "listen address, overrides server.addr")
	return cmd
}
