package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"voxtone/internal/studio"
)

// Run starts the studio UI and blocks until the user quits.
func Run(ctx context.Context, s *studio.Studio, opts Options, logger *log.Logger) error {
	logger.Debug("Starting studio", "alt_screen", opts.Config.AltScreen, "mouse", opts.Config.EnableMouse)

	m := newModel(ctx, s, opts, logger)
	defer m.unsubscribe()

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Config.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Config.EnableMouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	final, err := tea.NewProgram(m, progOpts...).Run()
	if fm, ok := final.(model); ok && fm.player != nil {
		fm.player.Stop()
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
