// Package cli implements the command-line interface for gdcvault.
//
// The root command repeats the original workflow: load a year's saved vault list, print
// the per-track tally and write the filtered export. Subcommands run the steps on their
// own: dump scrapes the listing (optionally with overviews), tally prints the
// classification and filter writes the export. The cli package wires config, scraper,
// storage and vault together and owns all terminal output.
package cli
