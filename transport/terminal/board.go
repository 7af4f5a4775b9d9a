package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

const (
	cellWidth  = 3
	viewWidth  = entity.BoardSize*cellWidth + entity.BoardSize - 1
	viewHeight = entity.BoardSize*2 - 1
)

var (
	humanStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	botStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	lineStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// BoardView draws the grid and tracks the cursor.
type BoardView struct {
	Box *tview.Box

	game entity.Game
	sel  entity.Move
}

func NewBoardView() *BoardView {
	view := &BoardView{
		Box: tview.NewBox(),
		sel: entity.Move{Row: 1, Col: 1},
	}

	view.Box.SetDrawFunc(view.draw)

	return view
}

func (that *BoardView) SetGame(game entity.Game) {
	that.game = game
}

func (that *BoardView) Selected() entity.Move {
	return that.sel
}

// MoveSelection - shifts the cursor, staying on the board.
func (that *BoardView) MoveSelection(rows, cols int) {
	next := entity.Move{Row: that.sel.Row + rows, Col: that.sel.Col + cols}
	if next.Valid() {
		that.sel = next
	}
}

func (that *BoardView) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	// center the grid in the box
	left := x + max(0, (width-viewWidth)/2)
	top := y + max(0, (height-viewHeight)/2)

	for row := range entity.BoardSize {
		lineY := top + row*2
		for col := range entity.BoardSize {
			cellX := left + col*(cellWidth+1)
			that.drawCell(screen, cellX, lineY, entity.Move{Row: row, Col: col})

			if col < entity.BoardSize-1 {
				screen.SetContent(cellX+cellWidth, lineY, tview.BoxDrawingsLightVertical, nil, lineStyle)
			}
		}

		if row < entity.BoardSize-1 {
			for dx := range viewWidth {
				r := tview.BoxDrawingsLightHorizontal
				if dx%(cellWidth+1) == cellWidth {
					r = tview.BoxDrawingsLightVerticalAndHorizontal
				}
				screen.SetContent(left+dx, lineY+1, r, nil, lineStyle)
			}
		}
	}

	return x, y, width, height
}

func (that *BoardView) drawCell(screen tcell.Screen, x, y int, move entity.Move) {
	mark := that.game.Board.Get(move)

	style := tcell.StyleDefault
	switch mark {
	case entity.Human:
		style = humanStyle
	case entity.Bot:
		style = botStyle
	}

	if last := that.game.LastMove; last != nil && *last == move {
		style = style.Underline(true)
	}

	if move == that.sel && !that.game.IsFinished() {
		style = style.Reverse(true)
	}

	symbol := []rune(mark.String())[0]
	screen.SetContent(x, y, ' ', nil, style)
	screen.SetContent(x+1, y, symbol, nil, style)
	screen.SetContent(x+2, y, ' ', nil, style)
}
