package voxtone

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"voxtone/internal/catalog"
	"voxtone/internal/speech"
	"voxtone/internal/store"
	"voxtone/internal/studio"
)

var (
	// Version is set at build time.
	Version = ""

	configFile string
	envFile    string
	closeLog   = func() error { return nil }

	rootCmd = &cobra.Command{
		Use:   "voxtone",
		Short: "Text to speech with Gemini voices and reusable styles",
		Long: "voxtone reads text aloud with the Gemini speech models. Pick a voice, a\n" +
			"preset or custom style, and get a WAV clip back. Run without arguments\n" +
			"for the interactive studio.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runTUI,
	}
)

// appEnv is everything a command needs, built once per run.
type appEnv struct {
	cfg    Config
	keySrc string
	store  *store.Store
	synth  *speech.Gemini
	studio *studio.Studio
}

var app *appEnv

// Run executes the command line and exits non-zero on failure.
func Run() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	if Version == "" {
		Version = "unknown (built from source)"
	}
	rootCmd.Version = Version
	rootCmd.PersistentPreRunE = setup

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: user config dir)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "path to .env file")
	rootCmd.PersistentFlags().String("log", "", "log file path")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for favorites and custom styles")
	rootCmd.PersistentFlags().String("model", "", "Gemini speech model")

	_ = viper.BindPFlag("log.file", rootCmd.PersistentFlags().Lookup("log"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	_ = viper.BindPFlag("model", rootCmd.PersistentFlags().Lookup("model"))

	rootCmd.AddCommand(sayCmd, previewCmd, voicesCmd, stylesCmd, favCmd, authCmd, configCmd, statusCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	// a broken config must stay editable
	if cmd == configCmd {
		return nil
	}
	if err := loadDotEnv(resolveEnvPath(envFile, configFile)); err != nil {
		log.Warn("Could not load .env file", "err", err)
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	// the studio owns the terminal, so it only logs to a file
	var out io.Writer = os.Stderr
	if cmd == rootCmd {
		out = io.Discard
	}
	closer, err := setupLog(cfg.LogFile, cfg.LogLevel, out)
	if err != nil {
		return fmt.Errorf("init logger failed: %w", err)
	}
	closeLog = closer

	app = newAppEnv(cfg)
	return nil
}

func newAppEnv(cfg Config) *appEnv {
	logger := log.Default()
	key, src := resolveAPIKey(cfg.APIKey)

	st := store.New(cfg.DataDir, logger.WithPrefix("store"))
	synth := speech.NewGemini(speech.GeminiConfig{
		APIKey:            key,
		Model:             cfg.Model,
		Timeout:           cfg.Timeout,
		RequestsPerMinute: cfg.RequestsPerMinute,
	}, logger.WithPrefix("gemini"))

	s := studio.New(synth, st, st.Load(), logger.WithPrefix("studio"))
	s.SetGender(cfg.Gender)
	// a voice other than the default wins over the configured gender
	if g, _ := catalog.GenderOf(cfg.Voice); g == cfg.Gender || cfg.Voice != catalog.DefaultVoice {
		if err := s.SelectVoice(cfg.Voice); err != nil {
			logger.Warn("Configured voice ignored", "voice", cfg.Voice, "err", err)
		}
	}
	if err := s.SelectStyle(cfg.Style); err != nil {
		logger.Warn("Configured style ignored", "style", cfg.Style, "err", err)
	}

	logger.Info("Studio ready", "model", synth.Model(), "data", st.Dir(), "credential", src)
	return &appEnv{
		cfg:    cfg,
		keySrc: src,
		store:  st,
		synth:  synth,
		studio: s,
	}
}
