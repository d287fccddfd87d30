package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"jobinsight-engine/internal/config"
)

func ConfigShowAction(ctx context.Context, cmd *cli.Command) error {
	app, err := NewAppContext(cmd)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "# %s\n", app.UserCfgPath)
	return yaml.NewEncoder(os.Stdout).Encode(app.Config)
}

// ConfigValidateAction reports errors and warnings without failing on
// warnings.
func ConfigValidateAction(ctx context.Context, cmd *cli.Command) error {
	if err := config.LoadEnvFile(cmd.String("env")); err != nil {
		return err
	}
	path, err := config.EnsureUserConfig(cmd.String("data-dir"), cmd.String("default-config"))
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return err
	}
	_, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		fmt.Fprintf(os.Stdout, "warning: %s\n", w)
	}
	for _, e := range vr.Errors {
		fmt.Fprintf(os.Stdout, "error: %s\n", e)
	}
	if !vr.OK() {
		return fmt.Errorf("config validation failed (%d errors)", len(vr.Errors))
	}
	fmt.Fprintf(os.Stdout, "%s is valid\n", path)
	return nil
}
