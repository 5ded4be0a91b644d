package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/kwargs"
	"github.com/aretw0/kwargs/internal/presentation/tui"
	httpAdapter "github.com/aretw0/kwargs/pkg/adapters/http"
	"github.com/aretw0/kwargs/pkg/adapters/memory"
	"github.com/aretw0/kwargs/pkg/adapters/redis"
	"github.com/aretw0/kwargs/pkg/observability"
	"github.com/aretw0/kwargs/pkg/persistence/middleware"
	"github.com/aretw0/kwargs/pkg/ports"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Serves GET /dict, POST /echo, the /dicts store, /metrics and /healthz.
Dicts are kept in memory unless redis.addr is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.HTTP.Port, _ = cmd.Flags().GetInt("port")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			backing, closeStore, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			store, err := a.wrapStore(backing)
			if err != nil {
				return err
			}

			handler := httpAdapter.NewHandler(
				httpAdapter.WithStore(store),
				httpAdapter.WithMetrics(observability.New()),
				httpAdapter.WithLogger(a.logger),
				httpAdapter.WithConvertOptions(a.convertOpts()...),
			)

			srv := &http.Server{
				Addr:              fmt.Sprintf(":%d", a.cfg.HTTP.Port),
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
				tui.PrintBanner(cmd.ErrOrStderr(), kwargs.Version)
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("Starting kwargs server", "addr", srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				return fmt.Errorf("server error: %w", err)
			case <-ctx.Done():
				a.logger.Info("Shutdown signal received")

				// Give outstanding requests a deadline for completion.
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()

				if err := srv.Shutdown(shutdownCtx); err != nil {
					a.logger.Warn("Graceful shutdown did not complete", "error", err)
					if err := srv.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						return fmt.Errorf("error killing server: %w", err)
					}
				}
				a.logger.Info("kwargs server stopped gracefully")
				return nil
			}
		},
	}
	cmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides http.port)")
	cmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
	return cmd
}

// openStore returns the redis store when configured, the memory store otherwise.
func (a *app) openStore(ctx context.Context) (ports.DictStore, func(), error) {
	rc := a.cfg.Redis
	if rc.Addr == "" {
		a.logger.Debug("Using in-memory dict store")
		return memory.NewStore(), func() {}, nil
	}

	store := redis.New(rc.Addr, rc.Password, rc.DB, redis.WithPrefix(rc.Prefix), redis.WithTTL(rc.TTL))
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", rc.Addr, err)
	}
	a.logger.Info("Using redis dict store", "addr", rc.Addr, "prefix", rc.Prefix)
	return store, func() { store.Close() }, nil
}

// wrapStore applies masking then encryption as configured under store.
func (a *app) wrapStore(store ports.DictStore) (ports.DictStore, error) {
	var mws []middleware.Middleware
	if len(a.cfg.Store.MaskKeys) > 0 {
		mw, err := middleware.NewPIIMiddleware(a.cfg.Store.MaskKeys)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}

	active, fallback, err := a.cfg.Store.Keys()
	if err != nil {
		return nil, err
	}
	if active != nil {
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		})
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
		a.logger.Info("Dict store encryption enabled", "fallback_keys", len(fallback))
	}
	return middleware.Chain(store, mws...), nil
}
