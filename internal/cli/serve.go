package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/deidaraiorek/deirake/internal/logging"
	"github.com/deidaraiorek/deirake/internal/server"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	port     string
	stoplist string
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve keyword extraction over HTTP",
		Long: `Start the HTTP keyword service.

Endpoints:
  GET  /health
  GET  /keywords?text=...&top=N
  POST /keywords   JSON {"text": "...", "top": N} or form field text
  GET  /stem?text=...
  POST /stem       JSON {"text": "..."} or form field text

/stem uses the RAKE_STEM_LANGUAGE stemmer.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.port, "port", "p", "", "Port to listen on (default: SERVER_PORT)")
	cmd.Flags().StringVarP(&opts.stoplist, "stoplist", "s", "", "Stoplist file (default: embedded SMART list)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.port != "" {
		cfg.Server.Port = opts.port
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		return err
	}
	defer logger.Close()

	extractor, err := newExtractor(cfg.Rake, opts.stoplist)
	if err != nil {
		return err
	}

	stemmer, err := newStemmer(cfg.Rake)
	if err != nil {
		return err
	}

	srv, err := server.New(extractor, logger, server.Config{
		CacheSize:    cfg.Server.CacheSize,
		MaxTextBytes: cfg.Server.MaxTextBytes,
		Stemmer:      stemmer,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening on %s", httpServer.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
