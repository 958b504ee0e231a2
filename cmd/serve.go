package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string
	var dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog snapshot over HTTP",
		Long: `Serves the output directory (catalog.json and mirrored images) as static
files so a storefront can consume the snapshot directly during development.`,
		Example: `  # Serve ./out on the default port 8888
  catalog serve

  # Serve a different snapshot directory
  catalog serve --dir snapshots/latest --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mux := http.NewServeMux()
			mux.Handle("/", http.FileServer(http.Dir(dir)))
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Catalog snapshot available", "addr", addr, "dir", dir, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case err := <-serverErr:
				return err
			case <-cmd.Context().Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&port, "port", "8888", "Port to serve on")
	cmd.Flags().StringVar(&dir, "dir", "out", "Snapshot directory to serve")

	return cmd
}
