package vault

import (
	"errors"
	"fmt"
	"sort"
)

// ErrMissingTrack is returned when a step keyed on the track name meets a vault without one.
var ErrMissingTrack = errors.New("vault has no trackname")

// Classification is the number of vaults filed under one track.
type Classification struct {
	Track string `json:"track"`
	Count int    `json:"count"`
}

// Classify counts vaults per track and orders the result by descending count.
// Tracks with equal counts keep the order in which they first appear in the collection.
func Classify(c *Collection) ([]Classification, error) {
	counts := make(map[string]int)
	order := make([]string, 0)

	for i, v := range c.Vaults {
		track, ok := v.Track()
		if !ok {
			return nil, fmt.Errorf("classifying vault %d: %w", i, ErrMissingTrack)
		}
		if _, seen := counts[track]; !seen {
			order = append(order, track)
		}
		counts[track]++
	}

	tally := make([]Classification, 0, len(order))
	for _, track := range order {
		tally = append(tally, Classification{Track: track, Count: counts[track]})
	}

	sort.SliceStable(tally, func(i, j int) bool {
		return tally[i].Count > tally[j].Count
	})

	return tally, nil
}

// Total sums the counts of a tally
func Total(tally []Classification) int {
	total := 0
	for _, c := range tally {
		total += c.Count
	}
	return total
}
