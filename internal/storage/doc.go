// Package storage provides JSON persistence for vault collections.
//
// Each conference year has two files in the data directory: GDC{YY}_vault_list.json holds
// the full scraped collection and GDC{YY}_filtered.json holds the track-filtered export.
// Both are UTF-8 JSON indented with four spaces, and are overwritten on every save.
package storage
