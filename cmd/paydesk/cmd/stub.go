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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/paydesk/paydesk/hrstub"
)

var stubPort int

var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run the in-memory HR API stub for local development",
	Long: `Starts an in-memory rendition of the paydesk HR API, seeded with one
account per role (password "` + hrstub.SeedPassword + `"). All data is lost on exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
		stub := hrstub.New(hrstub.WithLogger(logger))

		r := chi.NewRouter()
		r.Use(chimiddleware.Logger)
		r.Mount("/api", stub.Router())

		server := &http.Server{
			Addr:              fmt.Sprintf(":%d", stubPort),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		// Graceful shutdown on SIGINT/SIGTERM.
		done := make(chan error, 1)
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				done <- fmt.Errorf("server failed: %w", err)
				return
			}
			done <- nil
		}()

		printBanner()
		fmt.Printf("Stub API listening on port %d (docs at /api/docs)...\n", stubPort)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			fmt.Printf("\nReceived %s, shutting down...\n", sig)
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			return <-done
		case err := <-done:
			return err
		}
	},
}

func init() {
	stubCmd.Flags().IntVarP(&stubPort, "port", "p", 5001, "port to listen on")
	rootCmd.AddCommand(stubCmd)
}
