package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cocoverse/internal/export"
)

func (a *app) exportCmd() *cobra.Command {
	var (
		flags  filterFlags
		out    string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write an SVG snapshot of the filtered view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return fmt.Errorf("--out is required")
			}
			ds, err := a.loadDataset()
			if err != nil {
				return err
			}
			engine := a.newEngine(ds)

			snap := export.NewSnapshot(ds, engine, width, height, filepath.Base(a.cfg.Dataset))
			snap.Update(engine.DerivedView())
			detach := engine.Attach(snap)
			defer detach()

			if err := flags.apply(cmd, engine); err != nil {
				return err
			}
			if err := snap.SaveFile(out); err != nil {
				return err
			}

			a.logger.Info("snapshot written", zap.String("path", out))
			good.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output .svg path")
	cmd.Flags().IntVar(&width, "width", 960, "Canvas width in pixels")
	cmd.Flags().IntVar(&height, "height", 720, "Canvas height in pixels")
	return cmd
}
