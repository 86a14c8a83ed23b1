// ABOUTME: Local mock backend command for development and demos
// ABOUTME: Serves the storefront API contract from an in-memory seeded store

package cmd

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

	"github.com/lazybrownass/zorel-leather/internal/mockapi"
	"github.com/spf13/cobra"
)

var mockServerAddr string

var mockServerCmd = &cobra.Command{
	Use:   "mock-server",
	Short: "Run a local in-memory storefront backend",
	Long: `Run a local storefront backend with a seeded catalog and demo accounts:

  ada@example.com       customer-pass   (customer)
  grace@zorel.example   admin-pass      (admin)
  margaret@zorel.example super-pass     (super admin)

State lives in memory and resets on restart.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if code := runMockServer(ctx, mockServerAddr); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	mockServerCmd.Flags().StringVar(&mockServerAddr, "addr", ":8000", "Listen address")
	rootCmd.AddCommand(mockServerCmd)
}

func runMockServer(ctx context.Context, addr string) int {
	srv := mockapi.NewServer(mockapi.WithLogger(slog.Default()))
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("mock storefront listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
		return 0
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}
}
