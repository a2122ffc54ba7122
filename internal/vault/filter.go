package vault

import (
	"fmt"
	"sort"
)

// Filter returns the vaults whose track is one of tracks, sorted by track name.
// Vaults sharing a track keep their relative order. The returned collection holds the
// same *Vault values as c.
func Filter(c *Collection, tracks []string) (*Collection, error) {
	allowed := make(map[string]bool, len(tracks))
	for _, t := range tracks {
		allowed[t] = true
	}

	filtered := NewCollection()
	for i, v := range c.Vaults {
		track, ok := v.Track()
		if !ok {
			return nil, fmt.Errorf("filtering vault %d: %w", i, ErrMissingTrack)
		}
		if allowed[track] {
			filtered.Vaults = append(filtered.Vaults, v)
		}
	}

	sort.SliceStable(filtered.Vaults, func(i, j int) bool {
		return *filtered.Vaults[i].TrackName < *filtered.Vaults[j].TrackName
	})

	return filtered, nil
}
