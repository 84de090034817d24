package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cocoverse/internal/ui"
)

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive linked-view dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}
}

func (a *app) runTUI() error {
	ds, err := a.loadDataset()
	if err != nil {
		return err
	}
	engine := a.newEngine(ds)

	model := ui.NewModel(engine, a.cfg, a.logger.Named("ui"))
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetProgram(p)

	a.logger.Info("starting dashboard")
	if _, err := p.Run(); err != nil {
		a.logger.Error("dashboard failed", zap.Error(err))
		return fmt.Errorf("error running program: %w", err)
	}
	a.logger.Info("dashboard exited normally")
	return nil
}
