package searcher

import (
	"errors"
	"fmt"
	"sync"

	"skirmish/engine"
	"skirmish/experiments/metrics"
	"skirmish/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

var ErrNoWinningPower = errors.New("no attack power wins without losses")

var errNonMonotonic = errors.New("winning power found below a losing one")

type Option func(s *Search)

// WithFloor sets the lowest attack power tried.
func WithFloor(power int) Option {
	return func(s *Search) {
		if power > 0 {
			s.floor = power
		}
	}
}

// WithCeiling sets the highest attack power tried before giving up.
func WithCeiling(power int) Option {
	return func(s *Search) {
		if power > 0 {
			s.ceiling = power
		}
	}
}

// WithGoroutines sets how many probes run in parallel.
func WithGoroutines(goroutines int) Option {
	return func(s *Search) {
		if goroutines > 0 {
			s.goroutines = goroutines
		}
	}
}

// WithLinear scans every power from the floor up instead of bisecting.
func WithLinear() Option {
	return func(s *Search) {
		s.linear = true
	}
}

func WithMaxRounds(rounds int) Option {
	return func(s *Search) {
		if rounds > 0 {
			s.maxRounds = rounds
		}
	}
}

// WithGameOptions applies board options to every probe before the searched
// faction's attack power is set.
func WithGameOptions(options ...game.Option) Option {
	return func(s *Search) {
		s.gameOptions = append(s.gameOptions, options...)
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(s *Search) {
		if collector != nil {
			s.metrics = collector
		}
	}
}

// Search finds the lowest attack power at which a faction wins a battle
// without losing a single creature. Every probe replays the battle from a
// freshly parsed board.
type Search struct {
	input       string
	faction     game.Faction
	floor       int
	ceiling     int
	goroutines  int
	maxRounds   int
	linear      bool
	gameOptions []game.Option
	metrics     metrics.Collector
	play        func(power int) (Probe, error)

	mu     sync.Mutex
	probes map[int]Probe
}

// Probe is the result of one battle at a given attack power.
type Probe struct {
	AttackPower int
	Flawless    bool
	Outcome     engine.Outcome
}

func (p Probe) Metric() metrics.ProbeMetric {
	return metrics.ProbeMetric{
		AttackPower: p.AttackPower,
		Flawless:    p.Flawless,
		Aborted:     p.Outcome.Aborted,
		GameMetric:  p.Outcome.Metric,
	}
}

type Result struct {
	AttackPower int
	Outcome     engine.Outcome
	Probes      int
	Fallback    bool
}

func New(input string, faction game.Faction, options ...Option) (*Search, error) {
	s := &Search{ // Default values
		input:      input,
		faction:    faction,
		floor:      DefaultFloor,
		ceiling:    DefaultCeiling,
		goroutines: 1,
		maxRounds:  engine.MaxRounds,
		metrics:    metrics.NewDummyCollector(),
		probes:     make(map[int]Probe),
	}
	s.play = s.battle
	for _, option := range options {
		option(s)
	}
	if s.ceiling < s.floor {
		return nil, fmt.Errorf("ceiling %d is below floor %d", s.ceiling, s.floor)
	}
	if _, err := game.Parse(input, s.gameOptions...); err != nil {
		return nil, fmt.Errorf("invalid map: %w", err)
	}
	return s, nil
}

func (s *Search) Floor() int   { return s.floor }
func (s *Search) Ceiling() int { return s.ceiling }

// Run searches for the winning power. Results of earlier runs on the same
// Search are reused.
func (s *Search) Run() (Result, error) {
	s.metrics.Start(s.faction.String(), s.goroutines)
	log.Info().Msgf("searching %s attack power in [%d, %d] with %d goroutines", s.faction, s.floor, s.ceiling, s.goroutines)

	var (
		power    int
		err      error
		fallback bool
	)
	if s.linear {
		power, err = s.scan(s.floor, s.ceiling)
	} else {
		power, err = s.bisect()
		if errors.Is(err, errNonMonotonic) {
			log.Warn().Msg("probes are not monotonic in attack power, falling back to a linear scan")
			s.metrics.SetFallback()
			fallback = true
			win, _ := s.lowestWin()
			power, err = s.scan(s.floor, win)
		}
	}
	metric := s.metrics.Complete(power)
	if err != nil {
		return Result{}, err
	}

	p := s.cached(power)
	log.Info().Msgf("%s attack power %d wins in %d rounds with score %d after %d probes (%s)",
		s.faction, power, p.Outcome.Rounds, p.Outcome.Score, metric.Probes, metric.Duration)
	return Result{
		AttackPower: power,
		Outcome:     p.Outcome,
		Probes:      s.count(),
		Fallback:    fallback,
	}, nil
}

// bisect grows the distance above the floor until a winning power turns up,
// then narrows the gap between the highest loss and the lowest win.
func (s *Search) bisect() (int, error) {
	var bounds []int
	for gap := 0; s.floor+gap < s.ceiling; gap = 2*gap + 1 {
		bounds = append(bounds, s.floor+gap)
	}
	bounds = append(bounds, s.ceiling)

	hi, found := 0, false
	for len(bounds) > 0 && !found {
		n := min(s.goroutines, len(bounds))
		if err := s.probeAll(bounds[:n]); err != nil {
			return 0, err
		}
		bounds = bounds[n:]
		if err := s.checkMonotone(); err != nil {
			return 0, err
		}
		hi, found = s.lowestWin()
	}
	if !found {
		return 0, fmt.Errorf("%w up to attack power %d", ErrNoWinningPower, s.ceiling)
	}

	lo := s.highestLoss(hi)
	for hi-lo > 1 {
		if err := s.probeAll(splits(lo, hi, s.goroutines)); err != nil {
			return 0, err
		}
		if err := s.checkMonotone(); err != nil {
			return 0, err
		}
		hi, _ = s.lowestWin()
		lo = s.highestLoss(hi)
	}
	return hi, nil
}

// scan tries every power in [from, to] in ascending batches.
func (s *Search) scan(from, to int) (int, error) {
	for start := from; start <= to; start += s.goroutines {
		var batch []int
		for p := start; p <= to && p < start+s.goroutines; p++ {
			batch = append(batch, p)
		}
		if err := s.probeAll(batch); err != nil {
			return 0, err
		}
		for _, p := range batch {
			if s.cached(p).Flawless {
				return p, nil
			}
		}
	}
	return 0, fmt.Errorf("%w up to attack power %d", ErrNoWinningPower, to)
}

// splits returns up to n distinct powers strictly between lo and hi.
func splits(lo, hi, n int) []int {
	var out []int
	for k := 1; k <= n; k++ {
		p := lo + k*(hi-lo)/(n+1)
		if p > lo && p < hi && (len(out) == 0 || out[len(out)-1] != p) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = append(out, lo+(hi-lo)/2)
	}
	return out
}

// probeAll runs the given powers on up to s.goroutines workers.
func (s *Search) probeAll(powers []int) error {
	task := make(chan int, len(powers))
	for _, p := range powers {
		task <- p
	}
	close(task)

	errs := make([]error, len(powers))
	var wg sync.WaitGroup
	for i := 0; i < min(s.goroutines, len(powers)); i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			for p := range task {
				if _, err := s.Probe(p); err != nil {
					errs[worker] = errors.Join(errs[worker], err)
				}
			}
		}(i)
	}

	wg.Wait()
	return errors.Join(errs...)
}

// Probe plays one battle with the searched faction at the given attack
// power, stopping at its first loss. Results are memoised.
func (s *Search) Probe(power int) (Probe, error) {
	s.mu.Lock()
	p, ok := s.probes[power]
	s.mu.Unlock()
	if ok {
		return p, nil
	}

	p, err := s.play(power)
	if err != nil {
		return Probe{}, err
	}
	s.mu.Lock()
	s.probes[power] = p
	s.mu.Unlock()
	s.metrics.AddProbe(p.Metric())

	log.Debug().Int("attack_power", power).Bool("flawless", p.Flawless).Int("rounds", p.Outcome.Rounds).Msg("probe complete")
	return p, nil
}

func (s *Search) battle(power int) (Probe, error) {
	options := append(slices.Clone(s.gameOptions), game.WithAttackPower(s.faction, power))
	board, err := game.Parse(s.input, options...)
	if err != nil {
		return Probe{}, fmt.Errorf("probe at attack power %d: %w", power, err)
	}
	outcome, err := engine.New(board,
		engine.WithMaxRounds(s.maxRounds),
		engine.WithAbortOnLoss(s.faction),
	).Run()
	if err != nil {
		return Probe{}, fmt.Errorf("probe at attack power %d: %w", power, err)
	}

	return Probe{
		AttackPower: power,
		Flawless:    outcome.Flawless(s.faction),
		Outcome:     outcome,
	}, nil
}

// Probes returns every probe run so far in ascending attack power.
func (s *Search) Probes() []Probe {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Probe, 0, len(s.probes))
	for _, p := range s.probes {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b Probe) int { return a.AttackPower - b.AttackPower })
	return out
}

func (s *Search) cached(power int) Probe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.probes[power]
}

func (s *Search) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.probes)
}

func (s *Search) lowestWin() (int, bool) {
	for _, p := range s.Probes() {
		if p.Flawless {
			return p.AttackPower, true
		}
	}
	return 0, false
}

// highestLoss returns the highest losing power below hi, or floor-1.
func (s *Search) highestLoss(hi int) int {
	lo := s.floor - 1
	for _, p := range s.Probes() {
		if !p.Flawless && p.AttackPower < hi && p.AttackPower > lo {
			lo = p.AttackPower
		}
	}
	return lo
}

func (s *Search) checkMonotone() error {
	win, ok := s.lowestWin()
	if !ok {
		return nil
	}
	for _, p := range s.Probes() {
		if !p.Flawless && p.AttackPower > win {
			return fmt.Errorf("%w: %d wins, %d loses", errNonMonotonic, win, p.AttackPower)
		}
	}
	return nil
}
