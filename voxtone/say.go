package voxtone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"voxtone/internal/catalog"
	"voxtone/internal/player"
	"voxtone/internal/studio"
)

var (
	sayVoice  string
	sayStyle  string
	sayManual string
	sayOut    string
	sayPlay   bool

	sayCmd = &cobra.Command{
		Use:   "say [TEXT...]",
		Short: "Read text aloud and save it as a WAV file",
		Long: paragraph(fmt.Sprintf("\n%s the text with the selected voice and style and write the clip "+
			"to the output directory. Without arguments, or with \"-\", the text is read from stdin.", keyword("Speak"))),
		Example: paragraph("voxtone say Привет\n" +
			"voxtone say --voice Puck --style Радостный \"Good morning\"\n" +
			"voxtone say --manual \"ударение на О\" < text.txt"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !stdinIsPipe() {
				return errors.New("nothing to say: pass the text as arguments or pipe it in")
			}
			text, err := readText(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := applySelection(app.studio, sayVoice, sayStyle); err != nil {
				return err
			}
			app.studio.SetText(text)
			if !isBlank(sayManual) {
				app.studio.SetMode(studio.ModeManual)
				app.studio.SetManualText(sayManual)
			}

			clip, err := app.studio.Generate(cmd.Context())
			if err != nil {
				return err
			}
			return deliverClip(cmd.Context(), cmd.OutOrStdout(), clip, outputDir(sayOut), sayPlay)
		},
	}

	previewOut  string
	previewPlay bool

	previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Audition the selected voice and style on a sample sentence",
		Long: paragraph(fmt.Sprintf("\n%s a short fixed sentence with the selected voice and style. "+
			"The manual instruction never applies to previews.", keyword("Preview"))),
		Example: paragraph("voxtone preview --voice Charon --style Грустный"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := applySelection(app.studio, sayVoice, sayStyle); err != nil {
				return err
			}
			clip, err := app.studio.Preview(cmd.Context())
			if err != nil {
				return err
			}
			return deliverClip(cmd.Context(), cmd.OutOrStdout(), clip, previewOut, previewPlay)
		},
	}
)

func init() {
	for _, c := range []*cobra.Command{sayCmd, previewCmd} {
		c.Flags().StringVarP(&sayVoice, "voice", "v", "", "voice name (see \"voxtone voices\")")
		c.Flags().StringVarP(&sayStyle, "style", "s", "", "style name (see \"voxtone styles\")")
	}
	sayCmd.Flags().StringVarP(&sayManual, "manual", "m", "", "extra instruction appended to the style prompt")
	sayCmd.Flags().StringVarP(&sayOut, "out", "o", "", "output directory (default: output_dir)")
	sayCmd.Flags().BoolVarP(&sayPlay, "play", "p", false, "play the clip after saving it")

	previewCmd.Flags().StringVarP(&previewOut, "out", "o", "", "also save the preview into this directory")
	previewCmd.Flags().BoolVarP(&previewPlay, "play", "p", true, "play the preview")
}

// applySelection selects the voice and style named on the command line.
// Empty names keep the configured selection.
func applySelection(s *studio.Studio, voice, style string) error {
	if voice != "" {
		v, err := catalog.ParseVoice(voice)
		if err != nil {
			return err
		}
		if err := s.SelectVoice(v); err != nil {
			return err
		}
	}
	if style != "" {
		if err := s.SelectStyle(style); err != nil {
			return fmt.Errorf("%w: %s", err, style)
		}
	}
	return nil
}

func outputDir(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	return app.cfg.OutputDir
}

// deliverClip saves the clip when dir is set and plays it when asked to.
func deliverClip(ctx context.Context, w io.Writer, clip *studio.Clip, dir string, play bool) error {
	if dir != "" {
		path, err := clip.SaveTo(dir)
		if err != nil {
			return fmt.Errorf("save clip: %w", err)
		}
		fmt.Fprintf(w, "%s %s %s\n", keyword("Saved"), path,
			faint(fmt.Sprintf("(%s, %s)", humanize.Bytes(uint64(clip.Size())), clip.Duration().Round(100*time.Millisecond))))
	}
	if !play {
		return nil
	}
	return playClip(ctx, clip)
}

func playClip(ctx context.Context, clip *studio.Clip) error {
	p, err := player.New(log.Default().WithPrefix("player"))
	if err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() { done <- p.Play(clip.WAV) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		p.Stop()
		<-done
		return ctx.Err()
	}
}

// stdinIsPipe reports whether stdin is not a terminal.
func stdinIsPipe() bool {
	fi, err := os.Stdin.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice == 0
}
