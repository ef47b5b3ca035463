package cli

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfgraph/internal/server"
	"github.com/matzehuels/shelfgraph/pkg/warehouse"
)

const shutdownTimeout = 5 * time.Second

// serveCommand serves a layout over HTTP until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve <layout>",
		Short: "Serve the warehouse over a JSON HTTP API",
		Long: `Serve the warehouse over a JSON HTTP API.

Stock movements change the in-memory warehouse only; the layout file is not
rewritten. Stop the server with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := c.loadWarehouse(ctx, args[0])
			if err != nil {
				return err
			}
			if listen == "" {
				listen = c.Config.Listen
			}
			return c.serve(ctx, listen, warehouse.NewService(w))
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (default from config, else :8080)")
	return cmd
}

func (c *CLI) serve(ctx context.Context, addr string, svc *warehouse.Service) error {
	logger := loggerFromContext(ctx)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(svc, logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	printSuccess("Serving on %s", StyleValue.Render(addr))
	printNextStep("Try", "curl http://localhost"+portOf(addr)+"/locations")

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// portOf returns the ":port" suffix of a listen address.
func portOf(addr string) string {
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		return addr[i:]
	}
	return ""
}
