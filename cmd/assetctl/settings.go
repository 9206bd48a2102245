package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Elisha-Seme/assetqr/internal/app"
)

func newSettingsCmd(open opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or change registry settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get [KEY]",
		Short: "Print one setting, or all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				all, err := a.Configure.All(ctx)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(args) == 1 {
					v, ok := all[args[0]]
					if !ok {
						return fmt.Errorf("unknown setting %q", args[0])
					}
					fmt.Fprintln(out, v)
					return nil
				}
				keys := make([]string, 0, len(all))
				for k := range all {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(out, "%s=%s\n", k, all[k])
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change a setting; base_url and qr_color regenerate every QR",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				res, err := a.Configure.Update(ctx, map[string]string{args[0]: args[1]})
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "updated %s\n", args[0])
				if res.Regenerated != nil {
					fmt.Fprintf(out, "regenerated %d, failed %d\n", res.Regenerated.Regenerated, res.Regenerated.Failed)
				}
				return nil
			})
		},
	})
	return cmd
}
