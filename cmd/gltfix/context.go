package main

import (
	"log/slog"
	"strings"
	"sync"

	"gltfix/internal/config"
	"gltfix/internal/history"
	"gltfix/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// openHistory opens the run journal. Journaling is best-effort: failures
// are logged and the caller proceeds without a store.
func (c *commandContext) openHistory(logger *slog.Logger) *history.Store {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil
	}
	store, err := history.Open(cfg.HistoryDBPath())
	if err != nil {
		logger.Warn("run journal unavailable", logging.Error(err))
		return nil
	}
	return store
}
