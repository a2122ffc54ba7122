package vault

import (
	"errors"
	"testing"
)

func collectionOf(tracks ...string) *Collection {
	c := NewCollection()
	for _, track := range tracks {
		c.Vaults = append(c.Vaults, &Vault{TrackName: String(track)})
	}
	return c
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		tracks []string
		want   []Classification
	}{
		{
			name:   "descending by count",
			tracks: []string{"Design", "Programming", "Programming", "Audio", "Programming", "Design"},
			want: []Classification{
				{Track: "Programming", Count: 3},
				{Track: "Design", Count: 2},
				{Track: "Audio", Count: 1},
			},
		},
		{
			name:   "ties keep first occurrence order",
			tracks: []string{"Visual Arts", "Audio", "Design", "Audio", "Design", "Visual Arts"},
			want: []Classification{
				{Track: "Visual Arts", Count: 2},
				{Track: "Audio", Count: 2},
				{Track: "Design", Count: 2},
			},
		},
		{
			name:   "empty collection",
			tracks: nil,
			want:   []Classification{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := collectionOf(tt.tracks...)
			got, err := Classify(c)
			if err != nil {
				t.Fatalf("Classify() error = %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("Classify() returned %d entries, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Classify()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}

			if total := Total(got); total != c.Len() {
				t.Errorf("Total() = %d, want %d", total, c.Len())
			}
		})
	}
}

func TestClassify_MissingTrack(t *testing.T) {
	c := collectionOf("Design", "Programming")
	c.Vaults = append(c.Vaults, &Vault{Title: String("No track")})

	_, err := Classify(c)
	if !errors.Is(err, ErrMissingTrack) {
		t.Errorf("Classify() error = %v, want ErrMissingTrack", err)
	}
}

func TestClassify_NilVault(t *testing.T) {
	c := collectionOf("Design")
	c.Vaults = append(c.Vaults, nil)

	_, err := Classify(c)
	if !errors.Is(err, ErrMissingTrack) {
		t.Errorf("Classify() error = %v, want ErrMissingTrack", err)
	}
}
