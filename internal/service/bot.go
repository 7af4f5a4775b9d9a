package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

type BotService interface {
	MakeTurn(game *entity.Game) (entity.Move, error)
}

type searchEngine interface {
	Search(board *entity.Board, self entity.Mark) (minimax.Result, error)
}

type botService struct {
	logger *slog.Logger
	engine searchEngine
}

func NewBotService(logger *slog.Logger, engine searchEngine) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
		engine: engine,
	}
}

// MakeTurn - searches the best move for the bot and commits it to the game.
func (that *botService) MakeTurn(game *entity.Game) (entity.Move, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return entity.Move{}, err
	}

	if game.Turn() != entity.Bot {
		return entity.Move{}, apperror.ErrNotYourTurn
	}

	started := time.Now()

	result, err := that.engine.Search(&game.Board, entity.Bot)
	if err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to find a move: %w", err)
	}

	that.logger.Debug("search finished",
		"move", result.Move.String(),
		"score", result.Score,
		"nodes", result.Nodes,
		"elapsed", time.Since(started),
	)

	if err = tictactoe.MakeTurn(game, entity.Bot, result.Move); err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	return result.Move, nil
}
