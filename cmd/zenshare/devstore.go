package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/zenmark/zenshare/internal/pastetest"
)

func newDevStoreCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "dev-store",
		Short: "Run an in-memory paste store for local development",
		Long: `Serves the PrivateBin JSON API from memory. Pastes are lost on exit.
Point other commands at it with --host http://<addr>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return serveDevStore(cmd.Context(), a, ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}

// serveDevStore serves the store on ln until ctx is done.
func serveDevStore(ctx context.Context, a *app, ln net.Listener) error {
	store := pastetest.NewServer(pastetest.WithLogf(a.logger.Infof))
	srv := &http.Server{
		Handler:           store,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(a.cfg.Stdout, "Paste store listening on http://%s\n", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	a.logger.Infof("Paste store stopped with %d pastes", store.Len())
	return nil
}
