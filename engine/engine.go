package engine

import (
	"errors"
	"fmt"
	"time"

	"skirmish/experiments/metrics"
	"skirmish/game"

	"github.com/rs/zerolog/log"
)

// MaxRounds bounds a battle so a stand-off cannot loop forever.
const MaxRounds = 10000

var ErrRoundLimit = errors.New("round limit reached")

type Option func(e *Engine)

func WithMaxRounds(rounds int) Option {
	return func(e *Engine) {
		if rounds > 0 {
			e.maxRounds = rounds
		}
	}
}

// WithAbortOnLoss stops the battle as soon as the faction loses a creature.
func WithAbortOnLoss(f game.Faction) Option {
	return func(e *Engine) {
		e.abortOnLoss = true
		e.watched = f
	}
}

// WithTrace calls fn with the completed round count after every round played.
func WithTrace(fn func(rounds int, board *game.Board)) Option {
	return func(e *Engine) {
		e.trace = fn
	}
}

// Engine runs rounds on a board until one faction is wiped out.
type Engine struct {
	board       *game.Board
	rounds      int
	maxRounds   int
	abortOnLoss bool
	watched     game.Faction
	trace       func(int, *game.Board)
	initial     map[game.Faction]int
}

func New(board *game.Board, options ...Option) *Engine {
	e := &Engine{
		board:     board,
		maxRounds: MaxRounds,
		initial:   census(board),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *Engine) Board() *game.Board { return e.board }

// Rounds is the number of fully completed rounds so far.
func (e *Engine) Rounds() int { return e.rounds }

// Run plays the battle to the end. A board that is already over yields a
// zero-round outcome.
func (e *Engine) Run() (Outcome, error) {
	start := time.Now()
	log.Debug().Msgf("battle starting with %d elves and %d goblins", e.initial[game.Elf], e.initial[game.Goblin])

	for !e.board.Over() {
		if e.rounds >= e.maxRounds {
			return e.outcome(start, false), fmt.Errorf("%w: still contested after %d rounds", ErrRoundLimit, e.rounds)
		}

		if e.board.Round() {
			e.rounds++
			log.Trace().Int("round", e.rounds).Int("hit_points", e.board.HitPoints()).Msg("round complete")
		}
		if e.trace != nil {
			e.trace(e.rounds, e.board)
		}

		if e.abortOnLoss && e.board.Alive(e.watched) < e.initial[e.watched] {
			log.Debug().Msgf("battle aborted after %d rounds: %s lost a creature", e.rounds, e.watched)
			return e.outcome(start, true), nil
		}
	}

	o := e.outcome(start, false)
	log.Debug().Msgf("battle over after %d rounds with score %d", o.Rounds, o.Score)
	return o, nil
}

func (e *Engine) outcome(start time.Time, aborted bool) Outcome {
	end := time.Now()
	o := Outcome{
		Rounds:    e.rounds,
		HitPoints: e.board.HitPoints(),
		Decided:   e.board.Over(),
		Aborted:   aborted,
		Initial:   e.initial,
		Survivors: census(e.board),
	}
	o.Score = o.Rounds * o.HitPoints
	o.Metric = metrics.GameMetric{
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
		Rounds:    o.Rounds,
		Score:     o.Score,
	}
	if w, ok := o.Winner(); ok {
		o.Metric.Winner = w.String()
	}
	return o
}

func census(b *game.Board) map[game.Faction]int {
	counts := make(map[game.Faction]int, len(game.Factions))
	for _, f := range game.Factions {
		counts[f] = b.Alive(f)
	}
	return counts
}
