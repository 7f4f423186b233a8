package feedback

import (
	"encoding/json"
	"time"
)

const topPairsLimit = 10

// TopPair is one row of Summary.TopPairs.
type TopPair struct {
	Count       int       `json:"count"`
	LastSeen    time.Time `json:"lastSeen"`
	Query       string    `json:"query"`
	SelectedKey string    `json:"selectedKey"`
}

// Summary is the store's point-in-time report. Fields are declared in
// alphabetical order of their JSON tag so MarshalIndent's output keys
// come out sorted, matching the store's persistence contract.
type Summary struct {
	DroppedByCapacity int64     `json:"droppedByCapacity"`
	DroppedByTTL      int64     `json:"droppedByTTL"`
	GeneratedAt       time.Time `json:"generatedAt"`
	TopPairs          []TopPair `json:"topPairs"`
	TotalEvents       int       `json:"totalEvents"`
	UniqueQueries     int       `json:"uniqueQueries"`
}

// Summary reports totals, unique query count, eviction counters, and the
// top training pairs by count.
func (s *Store) Summary() Summary {
	snapshot := s.Snapshot()

	uniqueQueries := make(map[string]struct{})
	for _, e := range snapshot.Events {
		uniqueQueries[normalizedPairKey(e.Query, "")] = struct{}{}
	}

	samples := s.TrainingSamples(TrainingSampleOptions{MinOccurrences: 1, MaxSamples: topPairsLimit})
	topPairs := make([]TopPair, len(samples))
	for i, sample := range samples {
		topPairs[i] = TopPair{
			Query:       sample.Query,
			SelectedKey: sample.SelectedKey,
			Count:       sample.Count,
			LastSeen:    sample.LastSeen,
		}
	}

	return Summary{
		GeneratedAt:       time.Now().UTC(),
		TotalEvents:       len(snapshot.Events),
		UniqueQueries:     len(uniqueQueries),
		DroppedByTTL:      snapshot.DroppedByTTL,
		DroppedByCapacity: snapshot.DroppedByCapacity,
		TopPairs:          topPairs,
	}
}

// SummaryJSON is Summary marshaled to pretty-printed JSON with sorted
// object keys (struct fields are declared alphabetically) and ISO-8601
// timestamps.
func (s *Store) SummaryJSON() ([]byte, error) {
	return json.MarshalIndent(s.Summary(), "", "  ")
}
