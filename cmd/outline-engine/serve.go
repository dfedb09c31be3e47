// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/outline-engine/internal/api"
	"github.com/pdiddy/outline-engine/internal/ocr"
	"github.com/pdiddy/outline-engine/internal/workspace"
)

const defaultAddr = "127.0.0.1:8560"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API for the browser frontend",
	Long: `Serve runs the HTTP API the browser frontend talks to. The server
holds the profile lock for its lifetime, so CLI commands against the
same profile will fail while it runs. Listens on loopback by default;
set a server-api-key secret before binding to a non-loopback address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := appConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		if cfg.Server.Addr == "" {
			cfg.Server.Addr = defaultAddr
		}

		log := slog.New(slog.NewTextHandler(os.Stderr, nil))

		ws, err := workspace.Open(cmd.Context(), cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("opening profile %s: %w", cfg.Storage.ProfileDir, err)
		}
		defer ws.Close()

		var gw *ocr.Gateway
		if cfg.OCR.Endpoint != "" {
			var counter *ocr.RequestCounter
			if cfg.OCR.DailyLimit > 0 || cfg.OCR.MonthlyLimit > 0 {
				counter = ocr.NewRequestCounter(cfg.OCR.DailyLimit, cfg.OCR.MonthlyLimit, time.Now)
			}
			gw = ocr.NewGateway(cfg.OCR, counter)
		}

		srv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           api.NewServer(ws, gw, log, cfg.Server, cfg.Export.Style),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("listening", "addr", cfg.Server.Addr, "profile", cfg.Storage.ProfileDir)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default "+defaultAddr+")")

	rootCmd.AddCommand(serveCmd)
}
