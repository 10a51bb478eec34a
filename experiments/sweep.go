package experiments

import (
	"fmt"

	"skirmish/experiments/metrics"
	"skirmish/game"
	"skirmish/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Sweep probes every attack power in [from, to] for the faction.
func Sweep(input string, faction game.Faction, from, to int, options ...searcher.Option) ([]metrics.ProbeMetric, error) {
	options = append(options, searcher.WithFloor(from), searcher.WithCeiling(to))
	s, err := searcher.New(input, faction, options...)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf("sweeping %s attack power from %d to %d", faction, from, to)
	records := make([]metrics.ProbeMetric, 0, to-from+1)
	for p := from; p <= to; p++ {
		probe, err := s.Probe(p)
		if err != nil {
			return nil, err
		}
		records = append(records, probe.Metric())
	}
	return records, nil
}

// Monotone reports whether no losing probe follows a flawless one in
// ascending attack power.
func Monotone(records []metrics.ProbeMetric) bool {
	sorted := slices.Clone(records)
	slices.SortFunc(sorted, func(a, b metrics.ProbeMetric) int { return a.AttackPower - b.AttackPower })

	won := false
	for _, r := range sorted {
		if won && !r.Flawless {
			return false
		}
		won = won || r.Flawless
	}
	return true
}

// RunSearchExperiment runs the strength search and, when sweepTo is above
// the floor, a sweep up to it, then stores every probe under dir.
func RunSearchExperiment(dir, name, input string, faction game.Faction, sweepTo int, options ...searcher.Option) (searcher.Result, error) {
	collector := metrics.NewCollector()
	s, err := searcher.New(input, faction, append(options, searcher.WithMetrics(collector))...)
	if err != nil {
		return searcher.Result{}, err
	}

	result, err := s.Run()
	if err != nil {
		return searcher.Result{}, err
	}
	search := metrics.SearchRecord{ID: 1, SearchMetric: collector.Complete(result.AttackPower)}

	if sweepTo > 0 {
		for p := s.Floor(); p <= sweepTo; p++ {
			if _, err := s.Probe(p); err != nil {
				return searcher.Result{}, err
			}
		}
	}

	var probes []metrics.ProbeRecord
	for _, p := range s.Probes() {
		probes = append(probes, metrics.ProbeRecord{Search: search.ID, ProbeMetric: p.Metric()})
	}
	if sweepTo > 0 {
		records := make([]metrics.ProbeMetric, len(probes))
		for i, p := range probes {
			records[i] = p.ProbeMetric
		}
		if !Monotone(records) {
			log.Warn().Msgf("%s outcome is not monotonic in attack power up to %d", faction, sweepTo)
		}
	}

	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return result, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSearchRecords([]metrics.SearchRecord{search}); err != nil {
		return result, fmt.Errorf("failed to store search records: %w", err)
	}
	log.Info().Msg("stored search records")
	if err := writer.WriteProbeRecords(probes); err != nil {
		return result, fmt.Errorf("failed to store probe records: %w", err)
	}
	log.Info().Msgf("stored %d probe records in %s", len(probes), writer.Dir())

	return result, nil
}
