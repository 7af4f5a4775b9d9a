package usecase

import (
	"errors"
	"sync"
	"testing"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-bot/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-bot/internal/service"
	"github.com/rocketscienceinc/tictactoe-bot/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errBotDown = errors.New("bot down")

type mockBotService struct {
	mock.Mock
}

func (that *mockBotService) MakeTurn(game *entity.Game) (entity.Move, error) {
	args := that.Called(game)
	return args.Get(0).(entity.Move), args.Error(1)
}

// playRound - the human move followed by the bot answer, the way the terminal driver sequences them.
func playRound(t *testing.T, manager *GameManager, move entity.Move) entity.Game {
	t.Helper()

	game, err := manager.HumanTurn(move)
	require.NoError(t, err)

	if game.State != entity.StateBotTurn {
		return game
	}

	game, err = manager.BotTurn()
	require.NoError(t, err)

	return game
}

func TestGameManager_HumanTurn(t *testing.T) {
	t.Run("Valid move hands the turn to the bot", func(t *testing.T) {
		// Given: a manager with a fresh game
		_, st := suite.New(t)
		manager := NewGameManager(st.Logger, &mockBotService{})

		// When: the human plays the center
		game, err := manager.HumanTurn(entity.Move{Row: 1, Col: 1})

		// Then: the bot is to move
		require.NoError(t, err)
		assert.Equal(t, entity.StateBotTurn, game.State)
		assert.Equal(t, entity.Human, game.Board.Get(entity.Move{Row: 1, Col: 1}))
	})

	t.Run("Out of turn move is rejected", func(t *testing.T) {
		_, st := suite.New(t)
		manager := NewGameManager(st.Logger, &mockBotService{})

		_, err := manager.HumanTurn(entity.Move{Row: 1, Col: 1})
		require.NoError(t, err)

		// When: the human plays twice in a row
		_, err = manager.HumanTurn(entity.Move{Row: 0, Col: 0})

		// Then: ErrNotYourTurn comes back
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Snapshot is detached from the managed game", func(t *testing.T) {
		_, st := suite.New(t)
		manager := NewGameManager(st.Logger, &mockBotService{})

		game, err := manager.HumanTurn(entity.Move{Row: 2, Col: 2})
		require.NoError(t, err)

		// When: the caller scribbles on its copy
		game.Board.Clear(entity.Move{Row: 2, Col: 2})
		game.LastMove.Row = 0

		// Then: the managed game is unchanged
		current := manager.Snapshot()
		assert.Equal(t, entity.Human, current.Board.Get(entity.Move{Row: 2, Col: 2}))
		assert.Equal(t, &entity.Move{Row: 2, Col: 2}, current.LastMove)
	})
}

func TestGameManager_BotTurn(t *testing.T) {
	t.Run("Delegates to the bot service on the bot turn", func(t *testing.T) {
		// Given: a bot service that plays the corner
		_, st := suite.New(t)
		bot := &mockBotService{}
		bot.On("MakeTurn", mock.AnythingOfType("*entity.Game")).
			Run(func(args mock.Arguments) {
				game := args.Get(0).(*entity.Game)
				game.Board.Place(entity.Move{Row: 0, Col: 0}, entity.Bot)
				game.State = entity.StateHumanTurn
			}).
			Return(entity.Move{Row: 0, Col: 0}, nil).
			Once()

		manager := NewGameManager(st.Logger, bot)
		_, err := manager.HumanTurn(entity.Move{Row: 1, Col: 1})
		require.NoError(t, err)

		// When: the bot turn is triggered
		game, err := manager.BotTurn()

		// Then: the human is to move again
		require.NoError(t, err)
		assert.Equal(t, entity.StateHumanTurn, game.State)
		assert.Equal(t, entity.Bot, game.Board.Get(entity.Move{Row: 0, Col: 0}))
		bot.AssertExpectations(t)
	})

	t.Run("Refuses on the human turn", func(t *testing.T) {
		_, st := suite.New(t)
		bot := &mockBotService{}
		manager := NewGameManager(st.Logger, bot)

		_, err := manager.BotTurn()

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		bot.AssertNotCalled(t, "MakeTurn", mock.Anything)
	})

	t.Run("Wraps bot errors", func(t *testing.T) {
		_, st := suite.New(t)
		bot := &mockBotService{}
		bot.On("MakeTurn", mock.AnythingOfType("*entity.Game")).
			Return(entity.Move{}, errBotDown).
			Once()

		manager := NewGameManager(st.Logger, bot)
		_, err := manager.HumanTurn(entity.Move{Row: 0, Col: 0})
		require.NoError(t, err)

		game, err := manager.BotTurn()

		require.ErrorIs(t, err, errBotDown)
		assert.Equal(t, entity.StateBotTurn, game.State)
		bot.AssertExpectations(t)
	})
}

func TestGameManager_FullRound(t *testing.T) {
	t.Run("Bot answers right after the human move", func(t *testing.T) {
		// Given: a manager backed by the real minimax bot
		_, st := suite.New(t)
		manager := NewGameManager(st.Logger, service.NewBotService(st.Logger, minimax.New()))

		// When: the human opens in the corner
		game := playRound(t, manager, entity.Move{Row: 0, Col: 0})

		// Then: the bot has answered in the center and the human is to move
		assert.Equal(t, entity.StateHumanTurn, game.State)
		assert.Equal(t, entity.Bot, game.Board.Get(entity.Move{Row: 1, Col: 1}))
	})

	t.Run("Human never wins against the bot", func(t *testing.T) {
		_, st := suite.New(t)
		manager := NewGameManager(st.Logger, service.NewBotService(st.Logger, minimax.New()))

		// When: the human always plays the first free cell
		game := manager.Snapshot()
		for !game.IsFinished() {
			game = playRound(t, manager, game.Board.EmptyCells()[0])
		}

		// Then: the game ends with a bot win or a draw
		assert.Contains(t, []entity.State{entity.StateBotWon, entity.StateDraw}, game.State)
	})

	t.Run("Moves after the end are rejected until restart", func(t *testing.T) {
		_, st := suite.New(t)
		manager := NewGameManager(st.Logger, service.NewBotService(st.Logger, minimax.New()))

		game := manager.Snapshot()
		for !game.IsFinished() {
			game = playRound(t, manager, game.Board.EmptyCells()[0])
		}

		_, err := manager.HumanTurn(entity.Move{Row: 0, Col: 0})
		require.ErrorIs(t, err, apperror.ErrGameFinished)

		// When: the game is restarted
		game = manager.Restart()

		// Then: a fresh game starts with the human to move
		assert.Equal(t, *entity.NewGame(), game)
	})
}

func TestGameManager_ConcurrentAccess(t *testing.T) {
	_, st := suite.New(t)
	manager := NewGameManager(st.Logger, service.NewBotService(st.Logger, minimax.New()))

	_, err := manager.HumanTurn(entity.Move{Row: 0, Col: 0})
	require.NoError(t, err)

	// When: several bot callbacks race for the same turn
	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := manager.BotTurn()
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	// Then: exactly one of them moves
	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, apperror.ErrNotYourTurn)
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, manager.Snapshot().Board.Count(entity.Bot))
}
