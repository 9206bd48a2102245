package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Elisha-Seme/assetqr/internal/app"
	"github.com/Elisha-Seme/assetqr/internal/model"
)

// register is an import file. The top level is either a list of records or
// a mapping with an optional company name and an assets list.
type register struct {
	Company string             `yaml:"company"`
	Assets  []model.AssetInput `yaml:"assets"`
}

// parseRegister decodes YAML or JSON register content.
func parseRegister(data []byte) (*register, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse register: %w", err)
	}
	if len(doc.Content) == 0 {
		return &register{}, nil
	}

	top := doc.Content[0]
	var reg register
	switch top.Kind {
	case yaml.SequenceNode:
		if err := top.Decode(&reg.Assets); err != nil {
			return nil, fmt.Errorf("parse register: %w", err)
		}
	case yaml.MappingNode:
		if err := top.Decode(&reg); err != nil {
			return nil, fmt.Errorf("parse register: %w", err)
		}
	default:
		return nil, errors.New("parse register: expected a list of assets or a mapping with an assets key")
	}
	return &reg, nil
}

func newImportCmd(open opener) *cobra.Command {
	var (
		upsert  bool
		company string
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import an asset register from a YAML or JSON file",
		Long: "Import creates one record per entry. With --upsert, entries whose\n" +
			"asset_id already exists overwrite that record and reset its status\n" +
			"to active; the rest are inserted. Every imported record gets a fresh\n" +
			"QR artifact.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read register: %w", err)
			}
			reg, err := parseRegister(data)
			if err != nil {
				return err
			}
			if company == "" {
				company = reg.Company
			}

			return withApp(cmd, open, func(ctx context.Context, a *app.App) error {
				if company != "" {
					if _, err := a.Configure.Update(ctx, map[string]string{model.SettingCompanyName: company}); err != nil {
						return fmt.Errorf("set company name: %w", err)
					}
				}

				out := cmd.OutOrStdout()
				var errs []string
				if upsert {
					res := a.Assets.Upsert(ctx, reg.Assets)
					fmt.Fprintf(out, "created %d, updated %d, failed %d\n", res.Created, res.Updated, res.Failed)
					errs = res.Errors
				} else {
					res := a.Assets.BulkImport(ctx, reg.Assets)
					fmt.Fprintf(out, "imported %d, failed %d\n", res.Success, res.Failed)
					errs = res.Errors
				}
				for _, e := range errs {
					fmt.Fprintf(out, "  %s\n", e)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&upsert, "upsert", false, "update records whose asset_id already exists")
	cmd.Flags().StringVar(&company, "company", "", "set the organization name shown on pages and reports")
	return cmd
}
