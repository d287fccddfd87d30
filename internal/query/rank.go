package query

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Ranking sizes used by the reports.
const (
	TopStatsN    = 5
	TopBenefitsN = 10
	TopTitlesN   = 10
)

// Count is one ranked (value, count) pair. It encodes as a two-element JSON
// array so templates can index it positionally.
type Count struct {
	Value string
	Count int
}

func (c Count) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{c.Value, c.Count})
}

func (c *Count) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("count pair: want 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &c.Value); err != nil {
		return fmt.Errorf("count pair value: %w", err)
	}
	if err := json.Unmarshal(pair[1], &c.Count); err != nil {
		return fmt.Errorf("count pair count: %w", err)
	}
	return nil
}

// TopN counts values and returns the n most frequent, most frequent first.
// Equal counts keep first-seen order. n <= 0 means no limit. The result is
// never nil.
func TopN(values []string, n int) []Count {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, v := range values {
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	out := make([]Count, 0, len(order))
	for _, v := range order {
		out = append(out, Count{Value: v, Count: counts[v]})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
