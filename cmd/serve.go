package cmd

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

	"github.com/abhisek/afrolingo/internal/api"
)

const (
	shutdownTimeout = 15 * time.Second
	sweepInterval   = time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve curricula and lesson sessions over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		conf, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			conf.HTTP.Addr = addr
		}
		log := newLogger(conf.Dev)
		if !conf.Dev {
			log = log.With("service", "afrolingo")
		}

		catalog, _, err := newCatalog(conf, log)
		if err != nil {
			return err
		}
		if err := catalog.Warm(ctx); err != nil {
			return fmt.Errorf("build curricula: %w", err)
		}

		st, err := openStore(conf)
		if err != nil {
			return err
		}
		defer st.Close()

		report := st.SessionReporter(log)
		sessions := api.NewRegistry(conf.Session.TTL, report)
		go sessions.Run(ctx, sweepInterval)

		router := api.NewRouter(ctx, conf.HTTP, api.Dependencies{
			Catalog:    catalog,
			Sessions:   sessions,
			Progress:   st.ProgressRepo(),
			OnComplete: report,
			Defaults: api.SessionDefaults{
				Questions: conf.Session.Questions,
				MaxHearts: conf.Session.MaxHearts,
			},
			Now:    time.Now,
			Logger: log,
		})

		server := &http.Server{
			ReadHeaderTimeout: conf.HTTP.ReadHeaderTimeout,
			Addr:              conf.HTTP.Addr,
			Handler:           router,
		}

		go func() {
			<-ctx.Done()
			sCtx, sCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer sCancel()

			if sErr := server.Shutdown(sCtx); sErr != nil {
				log.ErrorContext(sCtx, "failed to shutdown api server", "error", sErr)
			}
		}()

		log.InfoContext(ctx, "starting api server", "version", version, "address", conf.HTTP.Addr)
		fmt.Fprintf(cmd.ErrOrStderr(), "listening on %s\n", conf.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("start api server: %w", err)
		}

		log.InfoContext(ctx, "api server is stopped", "sessions_dropped", sessions.Drain())
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides AFROLINGO_HTTP_ADDR)")
}
