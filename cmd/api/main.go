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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "groceries/docs"
	"groceries/pkg/api"
	"groceries/pkg/config"
	"groceries/pkg/logger"
	gotel "groceries/pkg/otel"
)

var build = "develop"

// @title Groceries API
// @version 1.0
// @description API for managing grocery items
// @host localhost:8080
// @BasePath /
func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	var cfgFile string
	cmd := &cobra.Command{
		Use:          "groceries-api",
		Short:        "Serve the grocery HTTP API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "path to a config file")
	f.Int("port", 8080, "listen port")
	f.String("store", config.StoreMemory, "storage backend: memory, postgres or redis")
	f.String("log-level", "info", "minimum log level")
	_ = v.BindPFlag("port", f.Lookup("port"))
	_ = v.BindPFlag("store", f.Lookup("store"))
	_ = v.BindPFlag("log_level", f.Lookup("log-level"))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), build)
		},
	})
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logger.New(os.Stdout, level, "groceries", gotel.GetTraceID)
	defer log.Sync()

	tp, shutdownTracing, err := gotel.InitTracing(log, gotel.Config{
		ServiceName: "groceries",
		Host:        cfg.OTELHost,
		Probability: cfg.TraceProbability,
	})
	if err != nil {
		log.Error(ctx, "init tracing", "error", err)
		return err
	}
	defer shutdownTracing(context.Background())

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Error(ctx, "open store", "store", cfg.Store, "error", err)
		return err
	}
	defer closeRepo()

	h := api.New(repo, log, tp.Tracer("groceries"), api.Config{CookieSecret: cfg.CookieSecret})
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "listening", "addr", srv.Addr, "store", cfg.Store, "tls", cfg.TLS(), "build", build)
		if cfg.TLS() {
			errCh <- srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
			return
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error(ctx, "server closed", "error", err)
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
