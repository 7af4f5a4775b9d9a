package entity

import "fmt"

const BoardSize = 3

// Move is a (row, col) coordinate into the grid.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Move) Valid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}
