package vault

// Vault represents a single talk on the GDC Vault listing.
// A nil field means the value was not found on the page.
type Vault struct {
	Name         *string `json:"name,omitempty"`
	Title        *string `json:"title,omitempty"`
	Author       *string `json:"author,omitempty"`
	Organization *string `json:"organization,omitempty"`
	TrackName    *string `json:"trackname,omitempty"`
	URL          *string `json:"url,omitempty"`
	Overview     *string `json:"overview,omitempty"`

	// Index is the vault's position in its collection while overviews are being fetched.
	Index int `json:"-"`
}

// Collection is the ordered list of vaults for one conference year.
type Collection struct {
	Vaults []*Vault `json:"vaults"`
}

// NewCollection creates an empty collection
func NewCollection() *Collection {
	return &Collection{
		Vaults: make([]*Vault, 0),
	}
}

// Len returns the number of vaults in the collection
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Vaults)
}

// String returns a pointer to s, for populating optional fields.
func String(s string) *string {
	return &s
}

// Value returns the string behind an optional field and whether it was set.
func Value(field *string) (string, bool) {
	if field == nil {
		return "", false
	}
	return *field, true
}

// Track returns the vault's track name and whether it has one. A nil vault has none.
func (v *Vault) Track() (string, bool) {
	if v == nil {
		return "", false
	}
	return Value(v.TrackName)
}
