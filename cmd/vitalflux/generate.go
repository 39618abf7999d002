package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalflux/vitalflux/gateway"
	"github.com/vitalflux/vitalflux/resolve"
)

func newGenerateCmd() *cobra.Command {
	var showBindings bool

	cmd := &cobra.Command{
		Use:   "generate <request...>",
		Short: "Generate a single widget config from a natural-language request",
		Example: `  vitalflux generate "show me the number of patients per program"
  vitalflux generate --bindings "readmission rate trend by month"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.APIKey == "" {
				return fmt.Errorf("an API key is required: set VITALFLUX_API_KEY or --api-key")
			}

			reg, err := buildRegistry(cfg)
			if err != nil {
				return err
			}

			gw := gateway.New(gateway.Config{
				APIKey:   cfg.APIKey,
				Model:    cfg.Model,
				Endpoint: cfg.Endpoint,
			}, reg)

			widgetCfg, err := gw.Generate(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := map[string]any{"config": widgetCfg}
			if showBindings {
				binding := resolve.New(reg).DataOptions(widgetCfg)
				if binding.Ready() {
					out["binding"] = binding
				} else {
					out["placeholder"] = resolve.PlaceholderMessage
				}
			}

			enc, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(enc))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showBindings, "bindings", false, "also resolve the config into chart bindings")
	return cmd
}
