package voxtone

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	gap "github.com/muesli/go-app-paths"
	"github.com/spf13/viper"

	"voxtone/internal/catalog"
	"voxtone/internal/speech"
)

const (
	appName            = "voxtone"
	defaultLogMaxBytes = 10 * 1024 * 1024
	maxTextLen         = 10000
	apiKeyPlaceholder  = "your_api_key_here"
)

const defaultConfig = `# Gemini speech model
model: "gemini-2.5-flash-preview-tts"
# API key (prefer GEMINI_API_KEY or "voxtone auth set")
# api_key: ""
# where favorites and custom styles are kept (default: user data dir)
# data_dir: ""
# where generated clips are written
output_dir: "."
# per-request timeout
timeout: "60s"
# throttle outbound requests (0 = unlimited)
requests_per_minute: 0

# initial selection
gender: "female"
voice: "Kore"
# style: "Спокойный"

log:
  # debug, info, warn or error
  level: "warn"
  # file: "/tmp/voxtone.log"
`

// Config is the resolved configuration of one run.
type Config struct {
	Model             string
	APIKey            string
	DataDir           string
	OutputDir         string
	Timeout           time.Duration
	RequestsPerMinute int
	Gender            catalog.Gender
	Voice             catalog.VoiceName
	Style             string
	LogLevel          log.Level
	LogFile           string
}

func setConfigDefaults() {
	viper.SetDefault("model", speech.DefaultModel)
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("timeout", speech.DefaultTimeout)
	viper.SetDefault("requests_per_minute", 0)
	viper.SetDefault("gender", string(catalog.Female))
	viper.SetDefault("voice", string(catalog.DefaultVoice))
	viper.SetDefault("style", catalog.DefaultStyle().Name)
	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.file", "")
}

// configDirs lists where voxtone.yml is searched, most specific first.
func configDirs() ([]string, error) {
	scope := gap.NewScope(gap.User, appName)
	dirs, err := scope.ConfigDirs()
	if err != nil {
		return nil, err
	}
	if c := os.Getenv("XDG_CONFIG_HOME"); c != "" {
		dirs = append([]string{filepath.Join(c, appName)}, dirs...)
	}
	if c := os.Getenv("VOXTONE_CONFIG_HOME"); c != "" {
		dirs = append([]string{c}, dirs...)
	}
	return dirs, nil
}

func defaultDataDir() string {
	scope := gap.NewScope(gap.User, appName)
	dirs, err := scope.DataDirs()
	if err != nil || len(dirs) == 0 {
		return filepath.Join(".", "."+appName)
	}
	return dirs[0]
}

// loadConfigFile points viper at the config file, creating the default one
// when none exists yet.
func loadConfigFile() error {
	setConfigDefaults()
	viper.SetEnvPrefix(appName)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		dirs, err := configDirs()
		if err != nil {
			return fmt.Errorf("could not find configuration directory: %w", err)
		}
		for _, d := range dirs {
			viper.AddConfigPath(d)
		}
		viper.SetConfigName(appName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			log.Warn("Could not parse configuration file", "err", err)
		}
	}

	if used := viper.ConfigFileUsed(); used != "" {
		if configFile == "" {
			configFile = used
		}
		log.Debug("Using configuration file", "path", used)
		return nil
	}

	if configFile == "" {
		dirs, err := configDirs()
		if err != nil || len(dirs) == 0 {
			return nil
		}
		configFile = filepath.Join(dirs[0], appName+".yml")
	}
	if err := ensureConfigFile(); err != nil {
		log.Error("Could not create default configuration", "err", err)
	}
	return nil
}

// ensureConfigFile writes the default configuration when configFile does not
// exist yet.
func ensureConfigFile() error {
	if configFile == "" {
		return errors.New("no configuration file path")
	}
	if ext := path.Ext(configFile); ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("'%s' is not a supported configuration type: use '.yaml' or '.yml'", ext)
	}

	if _, err := os.Stat(configFile); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(configFile), 0o700); err != nil {
			return fmt.Errorf("unable to create directory: %w", err)
		}
		if err := os.WriteFile(configFile, []byte(defaultConfig), 0o600); err != nil {
			return fmt.Errorf("unable to write config file: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("unable to stat config file: %w", err)
	}
	return nil
}

// resolveConfig reads the effective values from viper and validates them.
func resolveConfig() (Config, error) {
	cfg := Config{
		Model:             strings.TrimSpace(viper.GetString("model")),
		APIKey:            strings.TrimSpace(viper.GetString("api_key")),
		DataDir:           strings.TrimSpace(viper.GetString("data_dir")),
		OutputDir:         strings.TrimSpace(viper.GetString("output_dir")),
		Timeout:           viper.GetDuration("timeout"),
		RequestsPerMinute: viper.GetInt("requests_per_minute"),
		Style:             viper.GetString("style"),
		LogFile:           strings.TrimSpace(viper.GetString("log.file")),
	}
	if cfg.Model == "" {
		cfg.Model = speech.DefaultModel
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("invalid timeout: %s", viper.GetString("timeout"))
	}
	if cfg.RequestsPerMinute < 0 {
		return cfg, fmt.Errorf("invalid requests_per_minute: %d", cfg.RequestsPerMinute)
	}

	g, err := catalog.ParseGender(viper.GetString("gender"))
	if err != nil {
		return cfg, err
	}
	cfg.Gender = g
	v, err := catalog.ParseVoice(viper.GetString("voice"))
	if err != nil {
		return cfg, err
	}
	cfg.Voice = v

	level, err := log.ParseLevel(viper.GetString("log.level"))
	if err != nil {
		return cfg, fmt.Errorf("invalid log level: %s", viper.GetString("log.level"))
	}
	cfg.LogLevel = level
	return cfg, nil
}
