package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// CollectAction downloads the configured snapshots into the data file. Without
// --force an existing file is left alone.
func CollectAction(ctx context.Context, cmd *cli.Command) error {
	app, err := NewAppContext(cmd)
	if err != nil {
		return err
	}
	c, err := app.Collector()
	if err != nil {
		return err
	}

	if !cmd.Bool("force") {
		created, err := c.EnsureData(ctx, app.DataPath)
		if err != nil {
			return fmt.Errorf("collect failed: %w", err)
		}
		if !created {
			fmt.Fprintf(os.Stdout, "Data file %s already exists; use --force to refresh\n", app.DataPath)
			return nil
		}
		fmt.Fprintf(os.Stdout, "Data successfully collected and saved to %s\n", app.DataPath)
		return nil
	}

	n, err := c.Run(ctx, app.DataPath)
	if err != nil {
		return fmt.Errorf("collect failed: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Data successfully collected and saved to %s (%d records)\n", app.DataPath, n)
	return nil
}
