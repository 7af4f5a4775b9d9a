package usecase

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/tictactoe"
)

type botService interface {
	MakeTurn(game *entity.Game) (entity.Move, error)
}

// GameManager owns a single game. The human handler and the delayed bot
// callback run on different goroutines, so every access goes through mu.
type GameManager struct {
	logger *slog.Logger
	bot    botService

	mu   sync.Mutex
	game *entity.Game
}

func NewGameManager(logger *slog.Logger, bot botService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game-manager"),
		bot:    bot,
		game:   entity.NewGame(),
	}
}

// HumanTurn - applies the human move. The returned game is a copy.
func (that *GameManager) HumanTurn(move entity.Move) (entity.Game, error) {
	log := that.logger.With("method", "HumanTurn", "move", move.String())

	that.mu.Lock()
	defer that.mu.Unlock()

	if err := tictactoe.MakeTurn(that.game, entity.Human, move); err != nil {
		log.Info("human move rejected", "error", err)
		return that.snapshot(), fmt.Errorf("failed to make human turn: %w", err)
	}

	log.Info("human moved", "state", that.game.State)

	return that.snapshot(), nil
}

// BotTurn - lets the bot answer when it is the bot's turn.
func (that *GameManager) BotTurn() (entity.Game, error) {
	log := that.logger.With("method", "BotTurn")

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.game.State != entity.StateBotTurn {
		return that.snapshot(), apperror.ErrNotYourTurn
	}

	move, err := that.bot.MakeTurn(that.game)
	if err != nil {
		log.Error("bot failed to move", "error", err)
		return that.snapshot(), fmt.Errorf("failed to make bot turn: %w", err)
	}

	log.Info("bot moved", "move", move.String(), "state", that.game.State)

	return that.snapshot(), nil
}

func (that *GameManager) Restart() entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	tictactoe.Reset(that.game)
	that.logger.Info("game restarted")

	return that.snapshot()
}

func (that *GameManager) Snapshot() entity.Game {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.snapshot()
}

func (that *GameManager) snapshot() entity.Game {
	game := *that.game
	if that.game.LastMove != nil {
		lastMove := *that.game.LastMove
		game.LastMove = &lastMove
	}

	return game
}
