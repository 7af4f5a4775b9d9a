// Package terminal is the presentation driver: it renders the game in a
// terminal and turns key presses into calls on the game manager.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rocketscienceinc/tictactoe-bot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
)

const helpText = "arrows/hjkl move  enter/space play  r restart  q quit"

type gameManager interface {
	HumanTurn(move entity.Move) (entity.Game, error)
	BotTurn() (entity.Game, error)
	Restart() entity.Game
	Snapshot() entity.Game
}

type UI struct {
	logger   *slog.Logger
	manager  gameManager
	botDelay time.Duration

	app    *tview.Application
	board  *BoardView
	status *tview.TextView

	// round changes on restart so a pending bot move from the previous game is dropped
	round atomic.Uint64

	// queueUpdate runs f on the UI goroutine
	queueUpdate func(f func())
}

func New(logger *slog.Logger, manager gameManager, botDelay time.Duration) *UI {
	ui := &UI{
		logger:   logger.With("component", "terminal"),
		manager:  manager,
		botDelay: botDelay,

		app:    tview.NewApplication(),
		board:  NewBoardView(),
		status: tview.NewTextView(),
	}

	ui.queueUpdate = func(f func()) {
		ui.app.QueueUpdateDraw(f)
	}

	ui.status.SetBorder(true).SetTitle(" Status ").SetTitleAlign(tview.AlignLeft)
	ui.board.Box.SetBorder(true).SetTitle(" tic-tac-toe ")
	ui.board.Box.SetInputCapture(ui.handleKey)

	help := tview.NewTextView().SetText(helpText).SetTextAlign(tview.AlignCenter)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(ui.board.Box, viewHeight+4, 0, true).
		AddItem(ui.status, 3, 0, false).
		AddItem(help, 1, 0, false)

	ui.app.SetRoot(layout, true).SetFocus(ui.board.Box)
	ui.render(manager.Snapshot())

	return ui
}

// Run - blocks until the user quits or ctx is canceled.
func (that *UI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		that.app.Stop()
	}()

	if err := that.app.Run(); err != nil {
		return fmt.Errorf("terminal ui failed: %w", err)
	}

	return nil
}

func (that *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		that.board.MoveSelection(-1, 0)
	case tcell.KeyDown:
		that.board.MoveSelection(1, 0)
	case tcell.KeyLeft:
		that.board.MoveSelection(0, -1)
	case tcell.KeyRight:
		that.board.MoveSelection(0, 1)
	case tcell.KeyEnter:
		that.play()
	case tcell.KeyEscape:
		that.app.Stop()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'k':
			that.board.MoveSelection(-1, 0)
		case 'j':
			that.board.MoveSelection(1, 0)
		case 'h':
			that.board.MoveSelection(0, -1)
		case 'l':
			that.board.MoveSelection(0, 1)
		case ' ':
			that.play()
		case 'r':
			that.round.Add(1)
			that.render(that.manager.Restart())
		case 'q':
			that.app.Stop()
		}
	default:
		return event
	}

	return nil
}

func (that *UI) play() {
	game, err := that.manager.HumanTurn(that.board.Selected())
	if err != nil {
		// occupied cells and presses out of turn are ignored
		if !errors.Is(err, apperror.ErrCellOccupied) && !errors.Is(err, apperror.ErrNotYourTurn) &&
			!errors.Is(err, apperror.ErrGameFinished) {
			that.logger.Error("human move failed", "error", err)
		}

		return
	}

	that.render(game)

	if game.State == entity.StateBotTurn {
		that.scheduleBot()
	}
}

// scheduleBot - applies the bot move after the configured pause.
func (that *UI) scheduleBot() {
	round := that.round.Load()

	time.AfterFunc(that.botDelay, func() {
		if that.round.Load() != round {
			return
		}

		game, err := that.manager.BotTurn()
		if err != nil {
			if !errors.Is(err, apperror.ErrNotYourTurn) {
				that.logger.Error("bot move failed", "error", err)
			}

			return
		}

		that.queueUpdate(func() {
			// a restart may have landed while the search held the manager
			if that.round.Load() != round {
				return
			}

			that.render(game)
		})
	})
}

func (that *UI) render(game entity.Game) {
	that.board.SetGame(game)
	that.status.SetText(StatusText(game))
}

// StatusText - the line shown under the board.
func StatusText(game entity.Game) string {
	switch game.State {
	case entity.StateHumanWon:
		return entity.HumanSymbol + " wins!"
	case entity.StateBotWon:
		return entity.BotSymbol + " wins!"
	case entity.StateDraw:
		return "It's a tie!"
	case entity.StateBotTurn:
		return entity.BotSymbol + " is thinking..."
	default:
		return "Your turn (" + entity.HumanSymbol + ")"
	}
}
