package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"github.com/zalando/go-keyring"

	"jobinsight-engine/internal/secrets"
)

func secretArg(cmd *cli.Command) (secrets.Secret, error) {
	name := cmd.String("name")
	s, ok := secrets.ByName(name)
	if !ok {
		return secrets.Secret{}, fmt.Errorf("unknown secret %q (use dataset or google)", name)
	}
	return s, nil
}

func SecretsSetAction(ctx context.Context, cmd *cli.Command) error {
	s, err := secretArg(cmd)
	if err != nil {
		return err
	}
	if err := secrets.Set(s, cmd.String("value")); err != nil {
		return fmt.Errorf("failed to store secret: %w", err)
	}
	fmt.Fprintf(os.Stdout, "stored %s in the OS keychain\n", s.Account)
	return nil
}

func SecretsDeleteAction(ctx context.Context, cmd *cli.Command) error {
	s, err := secretArg(cmd)
	if err != nil {
		return err
	}
	if err := secrets.Delete(s); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	fmt.Fprintf(os.Stdout, "removed %s\n", s.Account)
	return nil
}
