package system

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/calmind/internal/cli"
	"github.com/julianstephens/calmind/internal/keyring"
	"github.com/julianstephens/calmind/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show a stored secret (masked)."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
}

// KeyringSetCmd stores a secret. The value is prompted for, or read from
// stdin when not interactive, so it never lands in shell history.
type KeyringSetCmd struct {
	Name string `arg:"" enum:"remote-access-key,tts-api-key" help:"Secret name (remote-access-key|tts-api-key)."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Name)
	if err != nil {
		return err
	}

	value, err := readSecret(ctx, cmd.Name)
	if err != nil {
		return err
	}
	if secret == keyring.RemoteAccessKey && strings.Contains(value, "://") {
		return fmt.Errorf("%w: store only the access key, the endpoint goes in CALMIND_REMOTE_URL", postgres.ErrEmbeddedCredentials)
	}

	if err := keyring.Set(secret, value); err != nil {
		return err
	}
	ctx.Printf("✓ %s stored in OS keyring\n", secret)
	return nil
}

func readSecret(ctx *cli.Context, name string) (string, error) {
	var value string
	if ctx.Interactive {
		err := huh.NewInput().
			Title(name).
			EchoMode(huh.EchoModePassword).
			Value(&value).
			Run()
		if err != nil {
			return "", err
		}
	} else {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("failed to read secret from stdin: %w", err)
		}
		value = line
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errors.New("secret cannot be empty")
	}
	return value, nil
}

type KeyringGetCmd struct {
	Name string `arg:"" enum:"remote-access-key,tts-api-key" help:"Secret name."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Name)
	if err != nil {
		return err
	}
	value, err := keyring.Get(secret)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use 'calmind keyring set %s' to store one", secret, secret)
		}
		return err
	}
	ctx.Printf("%s: %s\n", secret, mask(value))
	return nil
}

type KeyringDeleteCmd struct {
	Name string `arg:"" enum:"remote-access-key,tts-api-key" help:"Secret name."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Name)
	if err != nil {
		return err
	}
	if err := keyring.Delete(secret); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", secret)
		}
		return err
	}
	ctx.Printf("✓ %s removed from OS keyring\n", secret)
	return nil
}

// mask keeps the last four characters.
func mask(v string) string {
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return strings.Repeat("*", len(v)-4) + v[len(v)-4:]
}
