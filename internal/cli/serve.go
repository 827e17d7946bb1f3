package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/AdrienWohrer/Anti-Virus-game-solver/internal/api"
	"github.com/AdrienWohrer/Anti-Virus-game-solver/pkg/storage"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr         string // listen address
	cacheBackend string // cache backend: "file", "redis", "off"
	redisAddr    string // redis address for --cache redis
	storeURI     string // MongoDB URI for the puzzle store, empty uses memory
}

// serveCommand creates the serve command, exposing the solver over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{
		addr:         ":8080",
		cacheBackend: cacheBackendOff,
		redisAddr:    "localhost:6379",
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.cacheBackend, "cache", opts.cacheBackend, "solution cache: off (default), file, redis")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", opts.redisAddr, "redis address for --cache redis")
	cmd.Flags().StringVar(&opts.storeURI, "store", "", "MongoDB URI for the puzzle store (default: in-memory)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts *serveOpts) error {
	ctx := cmd.Context()

	solutions, err := newCache(cmd, opts.cacheBackend, opts.redisAddr)
	if err != nil {
		return err
	}
	defer solutions.Close()

	var store storage.Store = storage.NewMemoryStore()
	if opts.storeURI != "" {
		mongo, err := storage.NewMongoStore(ctx, opts.storeURI)
		if err != nil {
			return err
		}
		store = mongo
	}
	defer store.Close(context.Background())

	server := api.NewServer(c.Logger, store, solutions)
	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		c.Logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
