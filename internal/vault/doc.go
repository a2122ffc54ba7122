// Package vault provides the record types for GDC Vault talks and the analysis run over them.
//
// A Vault is one talk scraped from the free GDC Vault listing. Every field is optional so
// that a missing match on the listing page stays distinguishable from an empty value.
// Collections are classified by track (a descending frequency tally) and filtered down to
// an allow-list of tracks, sorted by track name.
package vault
