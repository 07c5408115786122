package voxtone

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/editor"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the voxtone config file",
	Long: paragraph(fmt.Sprintf("\n%s the voxtone config file. We'll use EDITOR to determine which editor to use. "+
		"If the config file doesn't exist, it will be created.", keyword("Edit"))),
	Example: paragraph("voxtone config\nvoxtone config --config path/to/voxtone.yml"),
	Args:    cobra.NoArgs,
	RunE: func(*cobra.Command, []string) error {
		if err := ensureConfigFile(); err != nil {
			return err
		}

		c, err := editor.Cmd("voxtone", configFile)
		if err != nil {
			return fmt.Errorf("unable to set config file: %w", err)
		}
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		if err := c.Run(); err != nil {
			return fmt.Errorf("unable to run command: %w", err)
		}

		fmt.Println("Wrote config file to:", configFile)
		return nil
	},
}
