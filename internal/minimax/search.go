// Package minimax picks moves with an exhaustive full-depth minimax search.
//
// The search mutates the board in place and undoes every placement before
// returning, so the caller gets the board back exactly as it was. No pruning
// or memoization is done: every continuation is explored.
package minimax

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/rocketscienceinc/tictactoe-bot/internal/entity"
	"golang.org/x/sync/errgroup"
)

// WinScore is the score of a win found at depth 0.
const WinScore = 10

var (
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrTerminalBoard    = errors.New("board already has a winner")
	ErrInvalidMark      = errors.New("search side must be human or bot")
)

// Result of one top-level search.
type Result struct {
	Move  entity.Move
	Score int
	// Nodes is the number of positions evaluated below the root.
	Nodes int
}

type Option func(*Engine)

// WithParallel - evaluates top-level moves on separate goroutines, each on its own board copy.
func WithParallel(parallel bool) Option {
	return func(that *Engine) {
		that.parallel = parallel
	}
}

type Engine struct {
	parallel bool
}

func New(opts ...Option) *Engine {
	engine := &Engine{}
	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

// FindBestMove - returns the optimal move for self using the default sequential engine.
func FindBestMove(board *entity.Board, self entity.Mark) (entity.Move, error) {
	return New().FindBestMove(board, self)
}

func (that *Engine) FindBestMove(board *entity.Board, self entity.Mark) (entity.Move, error) {
	result, err := that.Search(board, self)
	if err != nil {
		return entity.Move{}, err
	}

	return result.Move, nil
}

// Search - scores every empty cell for self and returns the first one, in row-major order,
// with the highest score. self maximizes and its opponent minimizes.
func (that *Engine) Search(board *entity.Board, self entity.Mark) (Result, error) {
	if self != entity.Human && self != entity.Bot {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidMark, self)
	}

	if board.Winner(entity.Human) || board.Winner(entity.Bot) {
		return Result{}, ErrTerminalBoard
	}

	moves := board.EmptyCells()
	if len(moves) == 0 {
		return Result{}, ErrNoAvailableMoves
	}

	var scores, nodes []int
	if that.parallel {
		scores, nodes = that.scoreParallel(board, self, moves)
	} else {
		scores, nodes = that.scoreSequential(board, self, moves)
	}

	result := Result{Score: math.MinInt}
	for i, move := range moves {
		result.Nodes += nodes[i]
		if scores[i] > result.Score {
			result.Score = scores[i]
			result.Move = move
		}
	}

	return result, nil
}

func (that *Engine) scoreSequential(board *entity.Board, self entity.Mark, moves []entity.Move) ([]int, []int) {
	scores := make([]int, len(moves))
	nodes := make([]int, len(moves))

	for i, move := range moves {
		scores[i], nodes[i] = scoreMove(board, self, move)
	}

	return scores, nodes
}

func (that *Engine) scoreParallel(board *entity.Board, self entity.Mark, moves []entity.Move) ([]int, []int) {
	scores := make([]int, len(moves))
	nodes := make([]int, len(moves))

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, move := range moves {
		local := *board
		group.Go(func() error {
			scores[i], nodes[i] = scoreMove(&local, self, move)
			return nil
		})
	}

	// scoreMove never fails
	_ = group.Wait()

	return scores, nodes
}

// scoreMove - plays move for self and evaluates the reply as a minimizing ply at depth 0.
func scoreMove(board *entity.Board, self entity.Mark, move entity.Move) (int, int) {
	s := &searcher{
		board:    board,
		self:     self,
		opponent: self.Opponent(),
	}

	board.Place(move, self)
	score := s.minimax(0, false)
	board.Clear(move)

	return score, s.nodes
}

type searcher struct {
	board    *entity.Board
	self     entity.Mark
	opponent entity.Mark
	nodes    int
}

func (that *searcher) minimax(depth int, maximizing bool) int {
	that.nodes++

	switch {
	case that.board.Winner(that.self):
		return WinScore - depth
	case that.board.Winner(that.opponent):
		return depth - WinScore
	case that.board.IsFull():
		return 0
	}

	if maximizing {
		best := math.MinInt
		for _, move := range that.board.EmptyCells() {
			that.board.Place(move, that.self)
			best = max(best, that.minimax(depth+1, false))
			that.board.Clear(move)
		}

		return best
	}

	best := math.MaxInt
	for _, move := range that.board.EmptyCells() {
		that.board.Place(move, that.opponent)
		best = min(best, that.minimax(depth+1, true))
		that.board.Clear(move)
	}

	return best
}
