package voxtone

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"voxtone/internal/player"
	"voxtone/internal/tui"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, err := env.ParseAs[tui.Config]()
	if err != nil {
		return fmt.Errorf("error parsing config: %v", err)
	}
	cfg.OutputDir = app.cfg.OutputDir

	opts := tui.Options{
		Config: cfg,
		NewPlayer: func() (tui.Player, error) {
			p, err := player.New(log.Default().WithPrefix("player"))
			if err != nil {
				return nil, err
			}
			return p, nil
		},
		Load: app.store.Load,
	}
	if !clipboard.Unsupported {
		opts.Clipboard = clipboard.WriteAll
	}

	w, err := app.store.Watch()
	if err != nil {
		log.Warn("Not watching the store", "err", err)
	} else {
		defer func() { _ = w.Close() }()
		opts.Watcher = w
	}

	return tui.Run(cmd.Context(), app.studio, opts, log.Default().WithPrefix("tui"))
}
