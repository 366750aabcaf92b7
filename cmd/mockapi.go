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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/veerladharma/news-aggregator/internal/mockapi"
	"go.uber.org/zap"
)

const (
	envMockSecret = "NEWSAGG_MOCK_SECRET"
	envMockAdmin  = "NEWSAGG_MOCK_ADMIN_PASSWORD"
)

var (
	flagMockAddr   string
	flagMockNoSeed bool
)

var mockAPICmd = &cobra.Command{
	Use:   "mock-api",
	Short: "Serve an in-memory News Aggregator API for local development",
	Long: `Run a local stand-in for the News Aggregator API on --addr.

An admin account is seeded (admin@example.com / admin123 unless
NEWSAGG_MOCK_ADMIN_PASSWORD is set). All data lives in memory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		defer log.Sync()

		opts := mockapi.DefaultOptions()
		opts.Logger = log
		opts.SeedArticles = !flagMockNoSeed
		if v := os.Getenv(envMockSecret); v != "" {
			opts.Secret = v
		}
		if v := os.Getenv(envMockAdmin); v != "" {
			opts.AdminPassword = v
		}

		srv, err := mockapi.New(opts)
		if err != nil {
			return err
		}

		gin.SetMode(gin.ReleaseMode)
		httpSrv := &http.Server{
			Addr:         flagMockAddr,
			Handler:      srv.Router(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			log.Info("mock api listening", zap.String("addr", flagMockAddr), zap.String("client_api_url", cfg.APIURL))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case err := <-errc:
			return fmt.Errorf("serving: %w", err)
		case <-quit:
		}

		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	mockAPICmd.Flags().StringVar(&flagMockAddr, "addr", ":5000", "listen address")
	mockAPICmd.Flags().BoolVar(&flagMockNoSeed, "no-seed", false, "start without sample articles")
}
