package voxtone

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"voxtone/internal/catalog"
	"voxtone/internal/studio"
)

var (
	stylesJSON  bool
	stylePrompt string
	styleRename string
	styleYes    bool

	stylesCmd = &cobra.Command{
		Use:   "styles",
		Short: "List and manage speaking styles",
		Long: paragraph(fmt.Sprintf("\nPreset styles are built in. %s styles are yours to add, edit and remove; "+
			"they are kept in the data directory.", keyword("Custom"))),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printStyles(cmd.OutOrStdout(), app.studio.Snapshot(), stylesJSON)
		},
	}

	stylesListCmd = &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List preset and custom styles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printStyles(cmd.OutOrStdout(), app.studio.Snapshot(), stylesJSON)
		},
	}

	stylesAddCmd = &cobra.Command{
		Use:     "add [NAME]",
		Short:   "Create a custom style",
		Example: paragraph("voxtone styles add Диктор --prompt \"Read like a radio host.\"\nvoxtone styles add"),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, "")
			prompt := stylePrompt
			if isBlank(name) || isBlank(prompt) {
				var err error
				if name, prompt, err = promptStyle("New style", name, prompt); err != nil {
					return err
				}
			}
			st, err := app.studio.SaveStyle("", name, prompt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), keyword("Added"), st.Name)
			return nil
		},
	}

	stylesEditCmd = &cobra.Command{
		Use:     "edit NAME",
		Short:   "Rename a custom style or change its prompt",
		Example: paragraph("voxtone styles edit Диктор --name \"Ночной диктор\"\nvoxtone styles edit Диктор"),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := customStyle(app.studio, args[0])
			if err != nil {
				return err
			}
			name, prompt := st.Name, st.Prompt
			if styleRename == "" && stylePrompt == "" {
				if name, prompt, err = promptStyle("Edit style", name, prompt); err != nil {
					return err
				}
			}
			if styleRename != "" {
				name = styleRename
			}
			if stylePrompt != "" {
				prompt = stylePrompt
			}
			saved, err := app.studio.SaveStyle(st.ID, name, prompt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), keyword("Updated"), saved.Name)
			return nil
		},
	}

	stylesRmCmd = &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"delete"},
		Short:   "Delete a custom style",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := customStyle(app.studio, args[0])
			if err != nil {
				return err
			}
			var promptErr error
			deleted, err := app.studio.DeleteStyle(st.ID, func(st catalog.Style) bool {
				if styleYes {
					return true
				}
				ok, err := promptConfirm(fmt.Sprintf("Delete style %q?", st.Name), false)
				promptErr = err
				return ok
			})
			if err != nil {
				return err
			}
			if promptErr != nil {
				return promptErr
			}
			if deleted {
				fmt.Fprintln(cmd.OutOrStdout(), keyword("Deleted"), st.Name)
			}
			return nil
		},
	}
)

func init() {
	stylesCmd.PersistentFlags().BoolVar(&stylesJSON, "json", false, "print as JSON")
	stylesAddCmd.Flags().StringVarP(&stylePrompt, "prompt", "p", "", "delivery instruction of the style")
	stylesEditCmd.Flags().StringVarP(&stylePrompt, "prompt", "p", "", "new delivery instruction")
	stylesEditCmd.Flags().StringVarP(&styleRename, "name", "n", "", "new name")
	stylesRmCmd.Flags().BoolVarP(&styleYes, "yes", "y", false, "do not ask for confirmation")

	stylesCmd.AddCommand(stylesListCmd, stylesAddCmd, stylesEditCmd, stylesRmCmd)
}

// customStyle finds a custom style by exact name.
func customStyle(s *studio.Studio, name string) (catalog.Style, error) {
	for _, st := range s.CustomStyles() {
		if st.Name == name {
			return st, nil
		}
	}
	if catalog.IsPreset(name) {
		return catalog.Style{}, fmt.Errorf("%w: %s", studio.ErrNotCustomStyle, name)
	}
	return catalog.Style{}, fmt.Errorf("%w: %s", studio.ErrStyleNotFound, name)
}

type styleEntry struct {
	catalog.Style
	Group    string `json:"group"`
	Favorite bool   `json:"favorite"`
}

func printStyles(w io.Writer, snap studio.Snapshot, asJSON bool) error {
	groups := catalog.StyleGroups(snap.CustomStyles)
	if asJSON {
		var entries []styleEntry
		for _, g := range groups {
			for _, st := range g.Styles {
				entries = append(entries, styleEntry{
					Style:    st,
					Group:    g.Label,
					Favorite: slices.Contains(snap.FavoriteStyles, st.Name),
				})
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, header(g.Label))
		for _, st := range g.Styles {
			name := st.Name
			if st.Name == snap.Style.Name {
				name = keyword(name)
			}
			fmt.Fprintf(w, "%s %s  %s\n", star(slices.Contains(snap.FavoriteStyles, st.Name)), name, faint(oneLine(st.Prompt, 60)))
		}
	}
	return nil
}

// oneLine flattens s and shortens it to at most n runes.
func oneLine(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
