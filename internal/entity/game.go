package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

type State string

const (
	StateHumanTurn State = "human-turn"
	StateBotTurn   State = "bot-turn"
	StateHumanWon  State = "human-won"
	StateBotWon    State = "bot-won"
	StateDraw      State = "draw"
)

var (
	ErrMalformedBoard = errors.New("malformed board")
	ErrUnknownState   = errors.New("unknown game state")
)

type Game struct {
	Board    Board `json:"board"`
	State    State `json:"state"`
	LastMove *Move `json:"last_move,omitempty"`
}

// NewGame - the human always moves first on an empty board.
func NewGame() *Game {
	return &Game{
		State: StateHumanTurn,
	}
}

func (that *Game) IsFinished() bool {
	switch that.State {
	case StateHumanWon, StateBotWon, StateDraw:
		return true
	default:
		return false
	}
}

// Turn - the side to move, or Empty when the game is over.
func (that *Game) Turn() Mark {
	switch that.State {
	case StateHumanTurn:
		return Human
	case StateBotTurn:
		return Bot
	default:
		return Empty
	}
}

func (that *Game) ConfirmOngoingState() error {
	switch that.State {
	case StateHumanTurn, StateBotTurn:
		return nil
	case StateHumanWon, StateBotWon, StateDraw:
		return apperror.ErrGameFinished
	default:
		return fmt.Errorf("%w: %s", ErrUnknownState, that.State)
	}
}

// UpdateGameState - derives the next state from the board after mover has played.
func (that *Game) UpdateGameState(mover Mark) {
	switch that.Board.Outcome() {
	case BotWins:
		that.State = StateBotWon
	case HumanWins:
		that.State = StateHumanWon
	case Draw:
		that.State = StateDraw
	case Ongoing:
		if mover == Human {
			that.State = StateBotTurn
		} else {
			that.State = StateHumanTurn
		}
	}
}
