package voxtone

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"voxtone/internal/catalog"
)

var (
	voicesGender string
	voicesJSON   bool

	voicesCmd = &cobra.Command{
		Use:     "voices",
		Short:   "List the available voices",
		Example: paragraph("voxtone voices --gender male\nvoxtone voices --json"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			genders := catalog.Genders()
			if voicesGender != "" {
				g, err := catalog.ParseGender(voicesGender)
				if err != nil {
					return err
				}
				genders = []catalog.Gender{g}
			}
			snap := app.studio.Snapshot()
			return printVoices(cmd.OutOrStdout(), catalog.VoiceItems(genders...), snap.FavoriteVoices, snap.Voice, voicesJSON)
		},
	}
)

func init() {
	voicesCmd.Flags().StringVarP(&voicesGender, "gender", "g", "", "only list voices of this gender: female|male")
	voicesCmd.Flags().BoolVar(&voicesJSON, "json", false, "print as JSON")
}

type voiceEntry struct {
	catalog.VoiceItem
	Favorite bool `json:"favorite"`
}

func printVoices(w io.Writer, items []catalog.VoiceItem, favorites []string, selected catalog.VoiceName, asJSON bool) error {
	entries := make([]voiceEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, voiceEntry{VoiceItem: it, Favorite: slices.Contains(favorites, string(it.Name))})
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	var group catalog.Gender
	for _, e := range entries {
		if e.Gender != group {
			if group != "" {
				fmt.Fprintln(w)
			}
			group = e.Gender
			fmt.Fprintln(w, header(string(group)))
		}
		name := string(e.Name)
		if e.Name == selected {
			name = keyword(name)
		}
		fmt.Fprintf(w, "%s %s\n", star(e.Favorite), name)
	}
	return nil
}
