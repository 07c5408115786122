package voxtone

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"voxtone/internal/catalog"
)

type statusResp struct {
	Status       string `json:"status"`
	Version      string `json:"version"`
	Model        string `json:"model"`
	Credential   string `json:"credential"`
	ConfigFile   string `json:"config_file"`
	DataDir      string `json:"data_dir"`
	OutputDir    string `json:"output_dir"`
	Voice        string `json:"voice"`
	Style        string `json:"style"`
	Voices       int    `json:"voices"`
	CustomStyles int    `json:"custom_styles"`
	Favorites    int    `json:"favorites"`
	Message      string `json:"message,omitempty"`
}

var (
	statusJSON bool

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show configuration and readiness",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printStatus(cmd.OutOrStdout(), currentStatus(), statusJSON)
		},
	}
)

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "print as JSON")
}

func currentStatus() statusResp {
	snap := app.studio.Snapshot()
	resp := statusResp{
		Status:       "ready",
		Version:      Version,
		Model:        app.synth.Model(),
		Credential:   app.keySrc,
		ConfigFile:   configFile,
		DataDir:      app.store.Dir(),
		OutputDir:    app.cfg.OutputDir,
		Voice:        string(snap.Voice),
		Style:        snap.Style.Name,
		Voices:       len(catalog.AllVoices()),
		CustomStyles: len(snap.CustomStyles),
		Favorites:    len(snap.FavoriteVoices) + len(snap.FavoriteStyles),
	}
	if app.keySrc == sourceNone {
		resp.Status = "unconfigured"
		resp.Message = "no API key: run \"voxtone auth set\" or set " + envAPIKey
	}
	return resp
}

func printStatus(w io.Writer, resp statusResp, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	rows := [][2]string{
		{"status", resp.Status},
		{"version", resp.Version},
		{"model", resp.Model},
		{"credential", resp.Credential},
		{"config", resp.ConfigFile},
		{"data", resp.DataDir},
		{"output", resp.OutputDir},
		{"voice", resp.Voice},
		{"style", resp.Style},
		{"styles", fmt.Sprintf("%d custom", resp.CustomStyles)},
		{"favorites", fmt.Sprintf("%d", resp.Favorites)},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s %s\n", faint(fmt.Sprintf("%-11s", r[0])), r[1])
	}
	if resp.Message != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, resp.Message)
	}
	return nil
}
