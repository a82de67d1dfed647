package cli

import (
	"github.com/spf13/cobra"

	"github.com/Boredoom17/portfolio/internal/config"
	"github.com/Boredoom17/portfolio/internal/export"
	"github.com/Boredoom17/portfolio/internal/site"
)

func newExportCmd(load func() (config.Config, error)) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the site as static files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			logger := cfg.Logger()
			s, err := site.New(site.Options{PublicDir: cfg.PublicDir, TemplatesDir: cfg.TemplatesDir, Logger: logger})
			if err != nil {
				return err
			}
			return export.Run(s, export.Options{OutDir: out, PublicDir: cfg.PublicDir, Logger: logger})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "dist", "output directory (wiped first)")
	return cmd
}
