package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Elisha-Seme/assetqr/internal/app"
)

func newRegenCmd(open opener) *cobra.Command {
	return &cobra.Command{
		Use:   "regen",
		Short: "Regenerate the QR artifact of every asset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				res, err := a.Assets.RegenerateAll(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "regenerated %d, failed %d\n", res.Regenerated, res.Failed)
				if len(res.FailedIDs) > 0 {
					fmt.Fprintf(out, "  failed: %s\n", strings.Join(res.FailedIDs, ", "))
				}
				return nil
			})
		},
	}
}
