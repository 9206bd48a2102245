package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Elisha-Seme/assetqr/internal/app"
	"github.com/Elisha-Seme/assetqr/internal/config"
	"github.com/Elisha-Seme/assetqr/internal/logger"
)

// opener builds the registry a command operates on.
type opener func(ctx context.Context) (*app.App, error)

// openApp wires the registry from the environment. Logs go to stderr so
// command output on stdout stays machine readable.
func openApp(ctx context.Context) (*app.App, error) {
	cfg := config.Load()
	log := logger.New(os.Stderr, logger.LoadLocation(cfg.Timezone), cfg.LogLevel)
	return app.New(ctx, cfg, log, nil)
}

func newRootCmd(open opener) *cobra.Command {
	root := &cobra.Command{
		Use:   "assetctl",
		Short: "Manage the asset QR registry",
		Long: "assetctl imports asset registers, regenerates QR artifacts and\n" +
			"reads or changes registry settings. It uses the same DB_* and\n" +
			"ARTIFACT_* environment as the API server.",
		SilenceUsage: true,
	}

	root.AddCommand(newImportCmd(open))
	root.AddCommand(newRegenCmd(open))
	root.AddCommand(newSettingsCmd(open))
	return root
}

// withApp opens the registry for the duration of fn.
func withApp(cmd *cobra.Command, open opener, fn func(ctx context.Context, a *app.App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}
