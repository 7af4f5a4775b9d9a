package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

// MakeTurn - validates and applies a move for mark, then advances the game state.
// A rejected move leaves the game unchanged.
func MakeTurn(gameInstance *entity.Game, mark entity.Mark, move entity.Move) error {
	if err := gameInstance.ConfirmOngoingState(); err != nil {
		return err
	}

	if err := validateMove(gameInstance, mark, move); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	gameInstance.Board.Place(move, mark)
	gameInstance.LastMove = &move
	gameInstance.UpdateGameState(mark)

	return nil
}

// Reset - empties the board and gives the first move back to the human.
func Reset(gameInstance *entity.Game) {
	gameInstance.Board.Reset()
	gameInstance.LastMove = nil
	gameInstance.State = entity.StateHumanTurn
}

// validateMove - checks if the move is valid.
func validateMove(gameInstance *entity.Game, mark entity.Mark, move entity.Move) error {
	if gameInstance.Turn() != mark {
		return apperror.ErrNotYourTurn
	}

	if err := gameInstance.Board.CanPlace(move); err != nil {
		return err
	}

	return nil
}
