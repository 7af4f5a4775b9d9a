package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
)

// Outcome is derived from a Board on demand and never stored.
type Outcome string

const (
	Ongoing   Outcome = "ongoing"
	BotWins   Outcome = "bot-wins"
	HumanWins Outcome = "human-wins"
	Draw      Outcome = "draw"
)

// Lines - the 8 winning triples: rows, columns, diagonal and anti-diagonal.
var Lines = [8][3]Move{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{2, 0}, {1, 1}, {0, 2}},
}

// Board is the 3x3 grid. It is a plain value: assignment makes an independent copy.
type Board [BoardSize][BoardSize]Mark

func (that Board) Get(m Move) Mark {
	return that[m.Row][m.Col]
}

// CanPlace - checks the move before Place is called.
func (that Board) CanPlace(m Move) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidCell, m)
	}

	if that.Get(m) != Empty {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, m)
	}

	return nil
}

// Place - sets the cell. The cell must be empty; callers validate with CanPlace first.
func (that *Board) Place(m Move, mark Mark) {
	if mark == Empty {
		panic("entity: place called with empty mark")
	}

	if that[m.Row][m.Col] != Empty {
		panic(fmt.Sprintf("entity: place on occupied cell %s", m))
	}

	that[m.Row][m.Col] = mark
}

// Clear - resets the cell to Empty.
func (that *Board) Clear(m Move) {
	that[m.Row][m.Col] = Empty
}

func (that *Board) Reset() {
	*that = Board{}
}

func (that Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == Empty {
				return false
			}
		}
	}

	return true
}

// Winner - reports whether any line is entirely mark.
func (that Board) Winner(mark Mark) bool {
	if mark == Empty {
		return false
	}

	for _, line := range Lines {
		if that.Get(line[0]) == mark && that.Get(line[1]) == mark && that.Get(line[2]) == mark {
			return true
		}
	}

	return false
}

func (that Board) Outcome() Outcome {
	switch {
	case that.Winner(Bot):
		return BotWins
	case that.Winner(Human):
		return HumanWins
	case that.IsFull():
		return Draw
	default:
		return Ongoing
	}
}

// EmptyCells - legal moves in row-major order.
func (that Board) EmptyCells() []Move {
	moves := make([]Move, 0, BoardSize*BoardSize)
	for row := range BoardSize {
		for col := range BoardSize {
			if that[row][col] == Empty {
				moves = append(moves, Move{Row: row, Col: col})
			}
		}
	}

	return moves
}

func (that Board) Count(mark Mark) int {
	count := 0
	for _, row := range that {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}

	return count
}

func (that Board) String() string {
	var sb strings.Builder
	for row := range BoardSize {
		for col := range BoardSize {
			if col > 0 {
				sb.WriteByte(' ')
			}

			if mark := that[row][col]; mark == Empty {
				sb.WriteByte('.')
			} else {
				sb.WriteString(mark.String())
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// ParseBoard - builds a board from rows like "X X ." where X is the bot, O the human and . empty.
func ParseBoard(rows ...string) (Board, error) {
	var board Board
	if len(rows) != BoardSize {
		return board, fmt.Errorf("%w: expected %d rows, got %d", ErrMalformedBoard, BoardSize, len(rows))
	}

	for row, line := range rows {
		cells := strings.Fields(line)
		if len(cells) != BoardSize {
			return board, fmt.Errorf("%w: row %d has %d cells", ErrMalformedBoard, row, len(cells))
		}

		for col, cell := range cells {
			switch cell {
			case BotSymbol:
				board[row][col] = Bot
			case HumanSymbol:
				board[row][col] = Human
			case ".":
			default:
				return board, fmt.Errorf("%w: unknown cell %q", ErrMalformedBoard, cell)
			}
		}
	}

	return board, nil
}
