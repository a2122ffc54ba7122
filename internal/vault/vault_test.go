package vault

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestVault_JSONOptionalFields(t *testing.T) {
	v := &Vault{
		Title:        String("Intro to Rendering"),
		Organization: String(""),
		Index:        7,
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)

	if !strings.Contains(got, `"organization":""`) {
		t.Errorf("Marshal() = %s, want empty organization kept", got)
	}
	for _, absent := range []string{"name", "author", "trackname", "url", "overview", "index", "Index"} {
		if strings.Contains(got, `"`+absent+`"`) {
			t.Errorf("Marshal() = %s, should not contain %q", got, absent)
		}
	}
}

func TestVault_Track(t *testing.T) {
	tests := []struct {
		name      string
		vault     *Vault
		wantTrack string
		wantOK    bool
	}{
		{"with track", &Vault{TrackName: String("Design")}, "Design", true},
		{"empty track", &Vault{TrackName: String("")}, "", true},
		{"missing track", &Vault{}, "", false},
		{"nil vault", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, ok := tt.vault.Track()
			if track != tt.wantTrack || ok != tt.wantOK {
				t.Errorf("Track() = (%q, %v), want (%q, %v)", track, ok, tt.wantTrack, tt.wantOK)
			}
		})
	}
}

func TestNewCollection(t *testing.T) {
	c := NewCollection()

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"vaults":[]}` {
		t.Errorf("Marshal() = %s, want {\"vaults\":[]}", data)
	}

	var nilCollection *Collection
	if nilCollection.Len() != 0 {
		t.Errorf("nil Len() = %d, want 0", nilCollection.Len())
	}
}
