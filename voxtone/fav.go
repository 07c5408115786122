package voxtone

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"voxtone/internal/catalog"
	"voxtone/internal/studio"
)

var errUnknownFavorite = errors.New(`expected "voice" or "style"`)

var favCmd = &cobra.Command{
	Use:   "fav [voice|style] [NAME]",
	Short: "List favorites, or toggle a voice or style favorite",
	Example: paragraph("voxtone fav\n" +
		"voxtone fav voice Puck\n" +
		"voxtone fav style Спокойный"),
	Args:      cobra.RangeArgs(0, 2),
	ValidArgs: []string{"voice", "style"},
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		switch len(args) {
		case 0:
			printFavorites(w, app.studio.Snapshot())
			return nil
		case 1:
			return fmt.Errorf("missing %s name", args[0])
		}
		name, fav, err := toggleFavorite(app.studio, args[0], args[1])
		if err != nil {
			return err
		}
		if fav {
			fmt.Fprintln(w, star(true), keyword(name), "added to favorites")
		} else {
			fmt.Fprintln(w, keyword(name), "removed from favorites")
		}
		return nil
	},
}

// toggleFavorite flips the favorite state of a voice or style and returns its
// canonical name and whether it is a favorite now.
func toggleFavorite(s *studio.Studio, kind, name string) (string, bool, error) {
	switch kind {
	case "voice", "voices":
		v, err := catalog.ParseVoice(name)
		if err != nil {
			return "", false, err
		}
		return string(v), s.ToggleFavoriteVoice(v), nil
	case "style", "styles":
		if _, ok := catalog.FindStyle(name, s.CustomStyles()); !ok {
			return "", false, fmt.Errorf("%w: %s", studio.ErrStyleNotFound, name)
		}
		return name, s.ToggleFavoriteStyle(name), nil
	default:
		return "", false, fmt.Errorf("%w, got %q", errUnknownFavorite, kind)
	}
}

func printFavorites(w io.Writer, snap studio.Snapshot) {
	fmt.Fprintln(w, header("Favorite voices"))
	if len(snap.FavoriteVoices) == 0 {
		fmt.Fprintln(w, faint("  none"))
	}
	for _, v := range snap.FavoriteVoices {
		fmt.Fprintln(w, star(true), v)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, header("Favorite styles"))
	if len(snap.FavoriteStyles) == 0 {
		fmt.Fprintln(w, faint("  none"))
	}
	for _, st := range snap.FavoriteStyles {
		fmt.Fprintln(w, star(true), st)
	}
}
