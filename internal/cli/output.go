package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pfrederiksen/gdc-vault/internal/vault"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatTable OutputFormat = "table"
)

// Valid reports whether f is a supported format
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatTable:
		return true
	}
	return false
}

// TallyResult is the JSON form of a classification tally
type TallyResult struct {
	Classifications []vault.Classification `json:"classifications"`
	Total           int                    `json:"total"`
}

// WriteClassifications writes the tally in the specified format
func WriteClassifications(w io.Writer, tally []vault.Classification, format OutputFormat) error {
	switch format {
	case FormatText:
		return writeText(w, tally)
	case FormatJSON:
		return writeJSON(w, tally)
	case FormatTable:
		return writeTable(w, tally)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeText prints one "<track>: <count>" line per track
func writeText(w io.Writer, tally []vault.Classification) error {
	for _, c := range tally {
		if _, err := fmt.Fprintf(w, "%s: %d\n", c.Track, c.Count); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, tally []vault.Classification) error {
	if tally == nil {
		tally = []vault.Classification{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(TallyResult{
		Classifications: tally,
		Total:           vault.Total(tally),
	})
}

func writeTable(w io.Writer, tally []vault.Classification) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Track", "Talks"})
	for _, c := range tally {
		tw.AppendRow(table.Row{c.Track, strconv.Itoa(c.Count)})
	}
	tw.AppendFooter(table.Row{"Total", strconv.Itoa(vault.Total(tally))})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft, AlignFooter: text.AlignRight},
	})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
