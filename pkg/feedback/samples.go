package feedback

import (
	"sort"
	"strings"
	"time"
)

// TrainingSample is one aggregated (query, selectedKey) pair, as consumed
// by pkg/tuning.
type TrainingSample struct {
	Query       string
	SelectedKey string
	Count       int
	LastSeen    time.Time
}

// TrainingSampleOptions bounds trainingSamples' aggregation.
type TrainingSampleOptions struct {
	MinOccurrences int
	MaxSamples     int
}

type pairAggregate struct {
	query       string
	selectedKey string
	count       int
	lastSeen    time.Time
}

// TrainingSamples aggregates recorded events into (query, selectedKey)
// pair counts, keeping only events that carry a selection, trimming and
// normalizing both strings before grouping. Pairs below MinOccurrences
// are dropped; the remainder is sorted by count desc, then by most
// recent lastSeen, then capped at MaxSamples.
func (s *Store) TrainingSamples(opts TrainingSampleOptions) []TrainingSample {
	snapshot := s.Snapshot()

	byPair := make(map[string]*pairAggregate)
	order := make([]string, 0)
	for _, e := range snapshot.Events {
		query := strings.TrimSpace(e.Query)
		selected := strings.TrimSpace(e.SelectedKey)
		if query == "" || selected == "" {
			continue
		}

		key := normalizedPairKey(query, selected)
		agg, ok := byPair[key]
		if !ok {
			agg = &pairAggregate{query: query, selectedKey: selected}
			byPair[key] = agg
			order = append(order, key)
		}
		agg.count++
		if e.Timestamp.After(agg.lastSeen) {
			agg.lastSeen = e.Timestamp
		}
	}

	minOccurrences := opts.MinOccurrences
	if minOccurrences < 1 {
		minOccurrences = 1
	}

	samples := make([]TrainingSample, 0, len(order))
	for _, key := range order {
		agg := byPair[key]
		if agg.count < minOccurrences {
			continue
		}
		samples = append(samples, TrainingSample{
			Query:       agg.query,
			SelectedKey: agg.selectedKey,
			Count:       agg.count,
			LastSeen:    agg.lastSeen,
		})
	}

	sort.SliceStable(samples, func(i, j int) bool {
		if samples[i].Count != samples[j].Count {
			return samples[i].Count > samples[j].Count
		}
		return samples[i].LastSeen.After(samples[j].LastSeen)
	})

	if opts.MaxSamples > 0 && len(samples) > opts.MaxSamples {
		samples = samples[:opts.MaxSamples]
	}
	return samples
}
