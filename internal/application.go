package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-bot/internal/config"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-bot/internal/service"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-bot/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-bot/transport/terminal"
)

// RunApp - runs the terminal game until the user quits or a signal arrives.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signalContext(log)
	defer cancel()

	engine := minimax.New(minimax.WithParallel(conf.Search.Parallel))
	botService := service.NewBotService(logger, engine)
	gameManager := usecase.NewGameManager(logger, botService)

	log.Info("Starting terminal UI", "bot-delay", conf.BotDelay, "parallel-search", conf.Search.Parallel)

	ui := terminal.New(logger, gameManager, conf.BotDelay)
	if err := ui.Run(ctx); err != nil {
		return fmt.Errorf("terminal UI error: %w", err)
	}

	log.Info("Terminal UI closed, shutting down")

	return nil
}

// RunSelfPlay - lets the engine play both sides from an empty board and writes every position to out.
func RunSelfPlay(logger *slog.Logger, conf *config.Config, out io.Writer) (entity.State, error) {
	log := logger.With("component", "selfplay")

	ctx, cancel := signalContext(log)
	defer cancel()

	return selfPlay(ctx, log, minimax.New(minimax.WithParallel(conf.Search.Parallel)), out)
}

func selfPlay(ctx context.Context, log *slog.Logger, engine *minimax.Engine, out io.Writer) (entity.State, error) {
	game := entity.NewGame()

	for !game.IsFinished() {
		if err := ctx.Err(); err != nil {
			return game.State, fmt.Errorf("self-play interrupted: %w", err)
		}

		mark := game.Turn()

		move, err := engine.FindBestMove(&game.Board, mark)
		if err != nil {
			return game.State, fmt.Errorf("failed to find move for %s: %w", mark, err)
		}

		if err = tictactoe.MakeTurn(game, mark, move); err != nil {
			return game.State, fmt.Errorf("failed to make turn for %s: %w", mark, err)
		}

		log.Debug("self-play move", "mark", mark.String(), "move", move.String(), "state", game.State)

		if _, err = fmt.Fprintf(out, "%s plays %s\n%s\n", mark, move, game.Board.String()); err != nil {
			return game.State, fmt.Errorf("failed to write board: %w", err)
		}
	}

	if _, err := fmt.Fprintln(out, terminal.StatusText(*game)); err != nil {
		return game.State, fmt.Errorf("failed to write result: %w", err)
	}

	log.Info("self-play finished", "state", game.State)

	return game.State, nil
}

func signalContext(log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()

	return ctx, cancel
}
