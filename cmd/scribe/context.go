package main

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/logging"
	"scribe/internal/workcache"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
			if err := cfg.Validate(); err != nil {
				c.configErr = err
				return
			}
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

// newLogger builds the command logger. runID may be empty.
func (c *commandContext) newLogger(cfg *config.Config, component, runID string) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg, runID)
	if err != nil {
		return nil, err
	}
	return logging.NewComponentLogger(logger, component), nil
}

// openCache opens the work cache, or a disabled cache when turned off.
func (c *commandContext) openCache(cfg *config.Config, logger *slog.Logger) *workcache.Cache {
	path := ""
	if cfg.Cache.Enabled {
		path = cfg.Cache.Path
	}
	return workcache.NewCache(path, logger)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// isTerminal reports whether f is an interactive terminal.
func isTerminal(f any) bool {
	file, ok := f.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
