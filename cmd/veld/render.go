package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/veld-ui/veld/internal/config"
	"github.com/veld-ui/veld/pkg/render"
)

func renderCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Export the demo app as static HTML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			markup, err := render.ToString(demoApp(), render.Options{})
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			out := filepath.Join(outDir, "index.html")
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := render.WritePage(f, render.PageConfig{Title: cfg.Server.Title}, markup); err != nil {
				return err
			}
			success("wrote %s", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "dist", "output directory")
	return cmd
}
