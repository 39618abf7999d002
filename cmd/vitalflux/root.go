package main

import (
	"github.com/spf13/cobra"

	"github.com/vitalflux/vitalflux/config"
	"github.com/vitalflux/vitalflux/schema"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "vitalflux",
		Short:   "AI-generated chart widgets for the VitalFlux dashboard",
		Version: version,
		Long: `vitalflux resolves natural-language chart requests against the
VitalFlux data model: it asks a generative model for a widget config,
validates and repairs it against the schema catalog, and serves
render-ready chart bindings to the dashboard shell.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./vitalflux.yaml)")
	pf.String("api-key", "", "Gemini API key (or VITALFLUX_API_KEY / GEMINI_API_KEY)")
	pf.String("model", "", "Gemini model name")
	pf.String("catalog", "", "schema catalog YAML (default: builtin VitalFlux catalog)")
	pf.String("datasource", "", "datasource title override")
	pf.BoolP("verbose", "v", false, "verbose logging")

	root.AddCommand(
		newServeCmd(),
		newGenerateCmd(),
		newSchemaCmd(),
	)
	return root
}

// loadConfig resolves the layered configuration for a command invocation.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(cfgFile, cmd.Flags())
}

// buildRegistry loads the schema catalog and applies the single permitted
// datasource override before the registry is shared.
func buildRegistry(cfg *config.Config) (*schema.Registry, error) {
	reg := schema.VitalFlux()
	if cfg.Catalog != "" {
		var err error
		reg, err = schema.LoadFile(cfg.Catalog)
		if err != nil {
			return nil, err
		}
	}
	reg.OverrideSource(cfg.Datasource)
	return reg, nil
}
