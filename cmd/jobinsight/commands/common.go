package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"jobinsight-engine/internal/collect"
	"jobinsight-engine/internal/config"
	"jobinsight-engine/internal/llm"
	"jobinsight-engine/internal/logging"
	"jobinsight-engine/internal/secrets"
	"jobinsight-engine/internal/store"
)

// CommonFlags are attached to every command that loads configuration.
func CommonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "env",
			Usage: "path to a .env file",
			Value: ".env",
		},
		&cli.StringFlag{
			Name:    "data-dir",
			Usage:   "directory holding the user config.yml",
			Value:   ".",
			Sources: cli.EnvVars("JOBINSIGHT_DATA_DIR"),
		},
		&cli.StringFlag{
			Name:  "default-config",
			Usage: "config copied into data-dir on first run",
			Value: filepath.Join("config", "config.yml"),
		},
	}
}

// AppContext holds what every command needs after configuration is loaded.
type AppContext struct {
	Config      config.Config
	UserCfgPath string
	DataDir     string
	DataPath    string
	Log         zerolog.Logger
}

func NewAppContext(cmd *cli.Command) (*AppContext, error) {
	if err := config.LoadEnvFile(cmd.String("env")); err != nil {
		return nil, err
	}

	dataDir := cmd.String("data-dir")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	userCfgPath, err := config.EnsureUserConfig(dataDir, cmd.String("default-config"))
	if err != nil {
		return nil, fmt.Errorf("config bootstrap failed: %w", err)
	}

	cfg, err := config.Load(userCfgPath)
	if err != nil {
		return nil, fmt.Errorf("config load failed (%s): %w", userCfgPath, err)
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return nil, err
	}
	cfg, vr := config.NormalizeAndValidate(cfg)
	if !vr.OK() {
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(vr.Errors, "; "))
	}

	log := logging.NewWithWriter(os.Stderr, "jobinsight", cfg.App.Env, cfg.App.LogLevel)
	for _, w := range vr.Warnings {
		log.Warn().Str("path", userCfgPath).Msg(w)
	}

	return &AppContext{
		Config:      cfg,
		UserCfgPath: userCfgPath,
		DataDir:     dataDir,
		DataPath:    cfg.DataFile(dataDir),
		Log:         log,
	}, nil
}

func (a *AppContext) LoadConfig() (config.Config, error) {
	cfg, err := config.Load(a.UserCfgPath)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	cfg, _ = config.NormalizeAndValidate(cfg)
	return cfg, nil
}

func (a *AppContext) Collector() (*collect.Client, error) {
	token, err := secrets.Get(secrets.DatasetToken)
	if err != nil {
		return nil, err
	}
	return collect.New(a.Config, token, logging.Component(a.Log, "collect")), nil
}

func (a *AppContext) Generator(ctx context.Context) (llm.Generator, error) {
	key, err := secrets.Get(secrets.GoogleAPIKey)
	if err != nil {
		return nil, err
	}
	return llm.New(ctx, a.Config.LLM, key, logging.Component(a.Log, "llm"))
}

// LoadDataset collects the data file when it is missing, then loads it. A
// failed collect is logged and the load goes ahead with an empty store.
func (a *AppContext) LoadDataset(ctx context.Context) *store.Store {
	if _, err := os.Stat(a.DataPath); errors.Is(err, os.ErrNotExist) {
		a.Log.Info().Str("path", a.DataPath).Msg("data file not found; collecting data")
		if c, err := a.Collector(); err != nil {
			a.Log.Warn().Err(err).Msg("cannot collect without a dataset token")
		} else if _, err := c.EnsureData(ctx, a.DataPath); err != nil {
			a.Log.Warn().Err(err).Msg("collect failed")
		}
	}
	return store.Load(a.DataPath, logging.Component(a.Log, "store"))
}
