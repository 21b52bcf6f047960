package cmd

import (
	"fmt"

	"github.com/healthpath/portal/internal/config"
	"github.com/healthpath/portal/internal/logger"
)

// loadConfig prepares the same configuration and logger the server uses, so
// commands run against the database the server would open.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)
	return cfg, nil
}
