package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/gdc-vault/internal/logger"
	"github.com/pfrederiksen/gdc-vault/internal/vault"
)

// ErrMissingURL is returned when a vault without a detail page link is enriched.
var ErrMissingURL = errors.New("vault has no url")

// ProgressFunc is called once for every vault whose overview fetch finished.
// It may be called from several goroutines at once.
type ProgressFunc func(done *vault.Vault)

// FetchOverview fetches a talk page and returns its overview text, if it has one.
func (s *Scraper) FetchOverview(ctx context.Context, url string) (string, bool, error) {
	start := time.Now()
	body, err := s.fetch(ctx, url)
	if err != nil {
		return "", false, fmt.Errorf("fetching overview: %w", err)
	}
	logger.RecordTiming("scraper.fetch_overview", time.Since(start))

	return parseOverview(body)
}

// parseOverview finds the <p class="text-color-grey"> opening the <dd> that follows an
// "Overview:" heading.
func parseOverview(r io.ReadCloser) (string, bool, error) {
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return "", false, fmt.Errorf("reading overview page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(lineBreaks.Replace(string(raw))))
	if err != nil {
		return "", false, fmt.Errorf("parsing HTML: %w", err)
	}

	var overview string
	found := false
	doc.Find("dt > h3").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if heading.Text() != "Overview:" || heading.Next().Length() > 0 {
			return true
		}

		dd := heading.Parent().Next()
		if !dd.Is("dd") {
			return true
		}

		p := dd.Children().First()
		if !p.Is(`p[class="text-color-grey"]`) {
			return true
		}

		overview = p.Text()
		found = true
		return false
	})

	return overview, found, nil
}

// EnrichOverviews fetches the overview of every vault in c, at most s.concurrency at a
// time. Each vault is stamped with its position first and its enriched copy is written
// back to that position, so the final order never depends on completion order.
// The first failure cancels the remaining fetches and is returned.
func (s *Scraper) EnrichOverviews(ctx context.Context, c *vault.Collection, progress ProgressFunc) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, v := range c.Vaults {
		v.Index = i
		g.Go(func() error {
			enriched, err := s.enrichVault(gctx, v)
			if err != nil {
				return err
			}

			c.Vaults[enriched.Index] = enriched
			if progress != nil {
				progress(enriched)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("enriching overviews: %w", err)
	}
	return nil
}

func (s *Scraper) enrichVault(ctx context.Context, v *vault.Vault) (*vault.Vault, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	url, ok := vault.Value(v.URL)
	if !ok {
		return nil, fmt.Errorf("vault %d: %w", v.Index, ErrMissingURL)
	}

	overview, found, err := s.FetchOverview(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("vault %d: %w", v.Index, err)
	}

	enriched := *v
	if found {
		enriched.Overview = vault.String(overview)
		logger.IncrCounter("scraper.overviews_found")
	} else {
		logger.IncrCounter("scraper.overviews_missing")
	}

	logger.Debug("Fetched overview", logger.Fields{
		"index": v.Index,
		"url":   url,
		"found": found,
	})

	return &enriched, nil
}
