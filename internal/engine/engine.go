// Package engine wraps a UCI engine (Stockfish) behind the small oracle
// surface the rest of the tool needs: evaluate a position at fixed depth,
// or walk a line move by move scoring each position from White's side.
package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/notnil/chess"
	"github.com/notnil/chess/uci"

	"github.com/abhisek/chessbook/internal/swing"
)

// ErrUnavailable is returned when the engine binary cannot be found,
// started, or queried. Check with errors.Is.
var ErrUnavailable = errors.New("engine: stockfish unavailable")

// ResolvePath locates the Stockfish binary: an explicit path wins, then
// the STOCKFISH_PATH environment variable, then $PATH lookup.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if p := os.Getenv("STOCKFISH_PATH"); p != "" {
		return p, nil
	}
	p, err := exec.LookPath("stockfish")
	if err != nil {
		return "", fmt.Errorf("%w: not found on PATH (install it or set STOCKFISH_PATH)", ErrUnavailable)
	}
	return p, nil
}

// Engine is a running UCI engine process queried at a fixed depth.
type Engine struct {
	eng   *uci.Engine
	depth int
}

// New starts the engine at path and performs the UCI handshake.
func New(path string, depth int) (*Engine, error) {
	eng, err := uci.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: start %s: %v", ErrUnavailable, path, err)
	}
	if err := eng.Run(uci.CmdUCI, uci.CmdIsReady, uci.CmdUCINewGame); err != nil {
		eng.Close()
		return nil, fmt.Errorf("%w: handshake: %v", ErrUnavailable, err)
	}
	return &Engine{eng: eng, depth: depth}, nil
}

// Depth returns the fixed search depth the engine was opened with.
func (e *Engine) Depth() int {
	return e.depth
}

// Close shuts the engine process down.
func (e *Engine) Close() error {
	return e.eng.Close()
}

// Result is one evaluation of a position, from the side to move's point
// of view (the UCI convention). Exactly one of ScoreCP and MateIn is set.
type Result struct {
	Depth       int
	ScoreCP     *int
	MateIn      *int
	BestMoveUCI string
}

// Evaluate scores pos at the engine's fixed depth.
func (e *Engine) Evaluate(ctx context.Context, pos *chess.Position) (Result, error) {
	score, bestMove, err := e.analyse(ctx, pos)
	if err != nil {
		return Result{}, err
	}

	res := Result{Depth: e.depth}
	if bestMove != nil {
		res.BestMoveUCI = bestMove.String()
	}
	if score.Mate != 0 {
		mate := score.Mate
		res.MateIn = &mate
	} else {
		cp := score.CP
		res.ScoreCP = &cp
	}
	return res, nil
}

// WhitePOV scores pos from White's side regardless of whose turn it is,
// so successive plies compare directly. A forced mate saturates to
// ±swing.MateScore.
func (e *Engine) WhitePOV(ctx context.Context, pos *chess.Position) (swing.Score, error) {
	score, _, err := e.analyse(ctx, pos)
	if err != nil {
		return swing.Score{}, err
	}

	cp, mate := score.CP, score.Mate
	if pos.Turn() == chess.Black {
		cp, mate = -cp, -mate
	}
	if mate != 0 {
		numeric := swing.MateScore
		if mate < 0 {
			numeric = -swing.MateScore
		}
		return swing.Score{CP: numeric, Display: fmt.Sprintf("M%d", mate)}, nil
	}
	return swing.Score{CP: cp, Display: FormatCP(cp)}, nil
}

// analyse runs one fixed-depth search. The uci package has no context
// support, so ctx is only consulted between commands.
func (e *Engine) analyse(ctx context.Context, pos *chess.Position) (*uci.Score, *chess.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	cmdPos := uci.CmdPosition{Position: pos}
	cmdGo := uci.CmdGo{Depth: e.depth}
	if err := e.eng.Run(cmdPos, cmdGo); err != nil {
		return nil, nil, fmt.Errorf("%w: analyse: %v", ErrUnavailable, err)
	}
	results := e.eng.SearchResults()
	score := results.Info.Score
	return &score, results.BestMove, nil
}

// FormatCP renders centipawns in pawns with an explicit sign, e.g. "+0.35".
func FormatCP(cp int) string {
	return fmt.Sprintf("%+.2f", float64(cp)/100)
}

// LineStepper walks one opening line from the starting position,
// implementing swing.Stepper over a live engine.
type LineStepper struct {
	game *chess.Game
	eng  *Engine
}

// NewLineStepper returns a stepper at the starting position.
func NewLineStepper(eng *Engine) *LineStepper {
	return &LineStepper{game: chess.NewGame(), eng: eng}
}

// Score evaluates the current position, White POV. Failures match both
// ErrUnavailable and swing.ErrOracleUnavailable.
func (s *LineStepper) Score(ctx context.Context) (swing.Score, error) {
	score, err := s.eng.WhitePOV(ctx, s.game.Position())
	if err != nil {
		return swing.Score{}, fmt.Errorf("%w: %w", swing.ErrOracleUnavailable, err)
	}
	return score, nil
}

// Push applies one SAN token to the position.
func (s *LineStepper) Push(token string) error {
	if err := s.game.MoveStr(token); err != nil {
		return fmt.Errorf("illegal move %q: %w", token, err)
	}
	return nil
}
