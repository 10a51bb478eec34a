package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type GameMetric struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Rounds    int
	Score     int
	Winner    string // Faction name, empty if undecided
}

// ProbeMetric is one full battle run by the strength search.
type ProbeMetric struct {
	AttackPower int
	Flawless    bool // Searched faction won without losses
	Aborted     bool
	GameMetric
}

type SearchMetric struct {
	Faction     string
	Goroutines  int
	AttackPower int // Winning power, zero if none was found
	Probes      int
	Fallback    bool // Linear scan replaced bisection
	Duration    time.Duration
}

type Collector interface {
	Start(faction string, goroutines int)
	AddProbe(probe ProbeMetric)
	SetFallback()
	Probes() []ProbeMetric
	Complete(attackPower int) SearchMetric
}

type collector struct {
	faction    string
	goroutines int
	startTime  time.Time
	count      atomic.Int32
	fallback   atomic.Bool

	mu     sync.Mutex
	probes []ProbeMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(faction string, goroutines int) {
	m.startTime = time.Now()
	m.faction = faction
	m.goroutines = goroutines
}

func (m *collector) AddProbe(probe ProbeMetric) {
	m.count.Add(1)
	m.mu.Lock()
	m.probes = append(m.probes, probe)
	m.mu.Unlock()
}

func (m *collector) SetFallback() {
	m.fallback.Store(true)
}

func (m *collector) Probes() []ProbeMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ProbeMetric, len(m.probes))
	copy(out, m.probes)
	return out
}

func (m *collector) Complete(attackPower int) SearchMetric {
	return SearchMetric{
		Faction:     m.faction,
		Goroutines:  m.goroutines,
		AttackPower: attackPower,
		Probes:      int(m.count.Load()),
		Fallback:    m.fallback.Load(),
		Duration:    time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(faction string, goroutines int)  {}
func (m *dummyCollector) AddProbe(probe ProbeMetric)            {}
func (m *dummyCollector) SetFallback()                          {}
func (m *dummyCollector) Probes() []ProbeMetric                 { return nil }
func (m *dummyCollector) Complete(attackPower int) SearchMetric { return SearchMetric{} }
