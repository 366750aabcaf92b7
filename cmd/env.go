package cmd

import (
	"fmt"

	"github.com/veerladharma/news-aggregator/internal/api"
	"github.com/veerladharma/news-aggregator/internal/config"
	"github.com/veerladharma/news-aggregator/internal/logging"
	"github.com/veerladharma/news-aggregator/internal/store"
	"go.uber.org/zap"
)

// env is everything a command needs to talk to the API as the stored user.
type env struct {
	cfg    *config.Config
	log    *zap.Logger
	store  *store.Store
	client *api.Client
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadDotEnv(flagEnv); err != nil {
		return nil, fmt.Errorf("loading %s: %w", flagEnv, err)
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagAPIURL != "" {
		cfg.APIURL = flagAPIURL
	}
	return cfg, nil
}

func setup() (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("opening log: %w", err)
	}

	st, err := store.Open(cfg.StoreFile())
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	client := api.New(cfg.APIURL, api.WithTimeout(cfg.Timeout()), api.WithLogger(log))
	log.Info("starting", zap.String("version", version), zap.String("api_url", cfg.APIURL))
	return &env{cfg: cfg, log: log, store: st, client: client}, nil
}

func (e *env) Close() {
	e.store.Close()
	e.log.Sync()
}
