package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/lair/internal/app"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	storage    string
	catalog    string
}

func (g *globalFlags) options() app.Options {
	return app.Options{
		ConfigPath: g.configPath,
		Storage:    g.storage,
		Catalog:    g.catalog,
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "lair",
		Short: "Browse a catalog of dragons",
		Long: `lair is a terminal browser for a dragon catalog. Favorites, theme and
preferences are kept between runs in the configured storage backend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), g.options())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file path (default ~/.config/lair/config.toml)")
	flags.StringVar(&g.storage, "storage", "", "storage backend: file, redis, sqlite or memory")
	flags.StringVar(&g.catalog, "catalog", "", "catalog file or http(s) URL (default built-in)")

	cmd.AddCommand(newSearchCmd(g))
	cmd.AddCommand(newStateCmd(g))
	cmd.AddCommand(newLogsCmd(g))
	return cmd
}
