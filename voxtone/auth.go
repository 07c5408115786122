package voxtone

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var (
	authDotEnv bool

	authCmd = &cobra.Command{
		Use:   "auth",
		Short: "Manage the Gemini API key",
		Long: paragraph(fmt.Sprintf("\nThe API key is taken from %s in the config, then %s, "+
			"then the system keyring.", keyword("api_key"), keyword(envAPIKey))),
	}

	authSetCmd = &cobra.Command{
		Use:     "set",
		Short:   "Store the API key in the system keyring",
		Example: paragraph("voxtone auth set\necho $KEY | voxtone auth set\nvoxtone auth set --dotenv"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var key string
			var err error
			if stdinIsPipe() {
				key, err = readKey(cmd.InOrStdin())
			} else {
				key, err = promptPassword("Gemini API key", "Stored in the system keyring")
			}
			if err != nil {
				return err
			}
			if !usableKey(key) {
				return fmt.Errorf("API key is empty")
			}

			if authDotEnv {
				path := resolveEnvPath(envFile, configFile)
				if err := setDotEnv(path, envAPIKey, strings.TrimSpace(key)); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), keyword("Saved"), "API key to", path)
				return nil
			}
			if err := storeKeyringKey(key); err != nil {
				return fmt.Errorf("keyring: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), keyword("Saved"), "API key to the system keyring")
			return nil
		},
	}

	authDeleteCmd = &cobra.Command{
		Use:     "delete",
		Aliases: []string{"rm", "logout"},
		Short:   "Remove the stored API key",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if authDotEnv {
				path := resolveEnvPath(envFile, configFile)
				removed, err := unsetDotEnv(path, envAPIKey)
				if err != nil {
					return err
				}
				reportRemoved(w, removed, path)
				return nil
			}
			removed, err := deleteKeyringKey()
			if err != nil {
				return fmt.Errorf("keyring: %w", err)
			}
			reportRemoved(w, removed, "the system keyring")
			return nil
		},
	}

	authStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show where the API key comes from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, src := resolveAPIKey(app.cfg.APIKey)
			if src == sourceNone {
				fmt.Fprintln(cmd.OutOrStdout(), "No API key configured. Run", keyword("voxtone auth set"))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "API key %s from %s\n", maskKey(key), keyword(src))
			return nil
		},
	}
)

func init() {
	authCmd.PersistentFlags().BoolVar(&authDotEnv, "dotenv", false, "use the .env file instead of the keyring")
	authCmd.AddCommand(authSetCmd, authDeleteCmd, authStatusCmd)
}

func readKey(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func reportRemoved(w io.Writer, removed bool, where string) {
	if removed {
		fmt.Fprintln(w, keyword("Removed"), "API key from", where)
		return
	}
	fmt.Fprintln(w, "No API key stored in", where)
}

// maskKey keeps the last four characters of a key.
func maskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("•", len(key))
	}
	return strings.Repeat("•", 8) + key[len(key)-4:]
}
