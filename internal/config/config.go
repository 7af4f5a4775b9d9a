package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	appConfigFile = "tictactoe/config.yml"
	appLogFile    = "tictactoe/tictactoe.log"

	// LogToStderr sends the log to stderr instead of a file.
	LogToStderr = "-"
)

var ErrUnknownLogLevel = errors.New("unknown log level")

type Config struct {
	LogLevel string        `yaml:"log-level" env:"TICTACTOE_LOG_LEVEL" env-default:"info"`
	LogFile  string        `yaml:"log-file" env:"TICTACTOE_LOG_FILE"`
	BotDelay time.Duration `yaml:"bot-delay" env:"TICTACTOE_BOT_DELAY" env-default:"500ms"`
	Search   Search        `yaml:"search"`
}

type Search struct {
	Parallel bool `yaml:"parallel" env:"TICTACTOE_SEARCH_PARALLEL" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load - reads path, or only the environment when path is empty.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if _, err = config.SlogLevel(); err != nil {
		return nil, err
	}

	return config, nil
}

// Locate - finds config.yml in the XDG config dirs, then in workDir. Empty when there is none.
func Locate(workDir string) string {
	if path, err := xdg.SearchConfigFile(appConfigFile); err == nil {
		return path
	}

	local := filepath.Join(workDir, "config.yml")
	if _, err := os.Stat(local); err == nil {
		return local
	}

	return ""
}

func (that *Config) SlogLevel() (slog.Level, error) {
	switch that.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLogLevel, that.LogLevel)
	}
}

// LogPath - where the log goes; defaults to the XDG state dir since the terminal UI owns stdout.
func (that *Config) LogPath() (string, error) {
	if that.LogFile != "" {
		return that.LogFile, nil
	}

	path, err := xdg.StateFile(appLogFile)
	if err != nil {
		return "", fmt.Errorf("failed to resolve log file: %w", err)
	}

	return path, nil
}
