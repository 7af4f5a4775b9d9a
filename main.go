package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	app "github.com/rocketscienceinc/tictactoe-bot/internal"
	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
)

var (
	flagConfig   = flag.String("config", "", "Path to config.yml (default: XDG config dir, then ./config.yml)")
	flagSelfPlay = flag.Bool("selfplay", false, "Let the bot play both sides and print the game")
)

// main - is the entry point of the application. It initializes the configuration, logger, and runs the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	flag.Parse()

	conf := initConfig()
	logger, closeLog := initLogger(conf)
	defer closeLog()

	if *flagSelfPlay {
		if _, err := app.RunSelfPlay(logger, conf, os.Stdout); err != nil {
			panic(fmt.Errorf("self-play failed: %w", err))
		}
		return
	}

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// initialize config.
func initConfig() *config.Config {
	if *flagConfig != "" {
		return config.MustLoad(*flagConfig)
	}

	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(config.Locate(baseDir))
}

// initialize logger. The terminal UI owns stdout, so logs go to a file or stderr.
func initLogger(conf *config.Config) (*slog.Logger, func()) {
	level, err := conf.SlogLevel()
	if err != nil {
		panic(err)
	}

	path, err := conf.LogPath()
	if err != nil {
		panic(err)
	}

	var (
		sink     io.Writer = os.Stderr
		closeLog           = func() {}
	)

	if path != config.LogToStderr {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			panic(fmt.Errorf("failed to open log file: %w", err))
		}

		sink = file
		closeLog = func() { _ = file.Close() }
	}

	return slog.New(slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: level})), closeLog
}
