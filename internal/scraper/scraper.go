package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/gdc-vault/internal/logger"
	"github.com/pfrederiksen/gdc-vault/internal/vault"
)

const (
	DefaultBaseURL     = "https://gdcvault.com"
	DefaultConcurrency = 10
	Timeout            = 30 * time.Second
)

// ErrNoConferenceSection is returned when the listing page has no conference section.
var ErrNoConferenceSection = errors.New("conference section not found")

var (
	lineBreaks    = strings.NewReplacer("\n", "", "\r", "")
	// Runs of any Unicode whitespace, including \v, U+0085 and U+00A0.
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{85}]{2,}`)

	// Attributes that mark a talk on the listing, compared verbatim.
	vaultItemAttrs = map[string]string{
		"class":        "featured ",
		"count":        "",
		"sponsor_id":   "",
		"hide_sponsor": "",
	}
)

// Scraper handles fetching and parsing GDC Vault pages
type Scraper struct {
	client      *http.Client
	baseURL     string
	userAgent   string
	concurrency int
}

// Option configures a Scraper
type Option func(*Scraper)

// WithBaseURL overrides the GDC Vault host, e.g. for a mirror or a test server.
func WithBaseURL(baseURL string) Option {
	return func(s *Scraper) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scraper) {
		s.client.Timeout = timeout
	}
}

// WithUserAgent sets a User-Agent header on every request.
func WithUserAgent(userAgent string) Option {
	return func(s *Scraper) {
		s.userAgent = userAgent
	}
}

// WithConcurrency sets how many overview pages are fetched at once.
func WithConcurrency(n int) Option {
	return func(s *Scraper) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL:     DefaultBaseURL,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListingURL returns the free listing page for a conference year (2023 and 23 both map
// to .../free/gdc-23). Talk links on the page are relative to this URL.
func (s *Scraper) ListingURL(year int) string {
	return fmt.Sprintf("%s/free/gdc-%d", s.baseURL, year%100)
}

// FetchVaults fetches the listing page for year and extracts its vaults
func (s *Scraper) FetchVaults(ctx context.Context, year int) (*vault.Collection, error) {
	listingURL := s.ListingURL(year)

	start := time.Now()
	body, err := s.fetch(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetching listing: %w", err)
	}
	logger.RecordTiming("scraper.fetch_listing", time.Since(start))

	collection, err := parseVaults(body, listingURL)
	if err != nil {
		return nil, err
	}

	logger.SetGauge("scraper.vaults", float64(collection.Len()))
	logger.Info("Parsed listing", logger.Fields{
		"url":    listingURL,
		"vaults": collection.Len(),
	})

	return collection, nil
}

// fetch performs a GET and returns the response body
func (s *Scraper) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}

	return resp.Body, nil
}

// normalizeListing flattens the listing markup the way extraction expects it
func normalizeListing(raw string) string {
	text := lineBreaks.Replace(raw)
	text = strings.ReplaceAll(text, "&nbsp;", "")
	return whitespaceRun.ReplaceAllString(text, " ")
}

// parseVaults extracts vaults from listing HTML. Talk links are resolved against
// listingURL by plain concatenation.
func parseVaults(r io.ReadCloser, listingURL string) (*vault.Collection, error) {
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading listing: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(normalizeListing(string(raw))))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	section := doc.Find(`section[class="conference"]`).First()
	if section.Length() == 0 {
		return nil, ErrNoConferenceSection
	}

	collection := vault.NewCollection()
	section.Find("li").FilterFunction(isVaultItem).Each(func(i int, item *goquery.Selection) {
		v := parseVault(item, listingURL)
		logger.Debug("Parsed vault", logger.Fields{
			"position": i,
			"title":    v.Title,
		})
		collection.Vaults = append(collection.Vaults, v)
	})

	return collection, nil
}

func isVaultItem(_ int, li *goquery.Selection) bool {
	for name, want := range vaultItemAttrs {
		if got, ok := li.Attr(name); !ok || got != want {
			return false
		}
	}
	return true
}

// parseVault reads the fields of one listing item. Each lookup is independent.
func parseVault(item *goquery.Selection, listingURL string) *vault.Vault {
	v := &vault.Vault{
		Name:      firstText(item, `span[class="conference_name"]`),
		Title:     firstText(item, "strong"),
		TrackName: firstText(item, `span[class="track_name"]`),
	}

	v.Author, v.Organization = parseByline(item)

	if href, ok := item.Find(`a[class^="session_item"][href]`).First().Attr("href"); ok {
		v.URL = vault.String(listingURL + href)
	}

	return v
}

func firstText(sel *goquery.Selection, selector string) *string {
	match := sel.Find(selector).First()
	if match.Length() == 0 {
		return nil
	}
	return vault.String(match.Text())
}

// parseByline splits the "<em>by</em> Author <strong>(Organization)</strong>" byline.
// Author is everything before the last <strong> after the marker. A byline without a
// <strong> yields neither field.
func parseByline(item *goquery.Selection) (author, organization *string) {
	marker := item.Find("em").FilterFunction(func(_ int, em *goquery.Selection) bool {
		return em.Text() == "by"
	}).First()
	if marker.Length() == 0 {
		return nil, nil
	}

	var block []*html.Node
	for n := marker.Get(0).NextSibling; n != nil; n = n.NextSibling {
		block = append(block, n)
	}

	orgAt := -1
	for i, n := range block {
		if n.Type == html.ElementNode && n.Data == "strong" {
			orgAt = i
		}
	}
	if orgAt < 0 {
		return nil, nil
	}

	var name strings.Builder
	for _, n := range block[:orgAt] {
		name.WriteString(nodeText(n))
	}

	org := nodeText(block[orgAt])
	org = strings.TrimPrefix(org, "(")
	org = strings.TrimSuffix(org, ")")

	return vault.String(trimOneSpace(name.String())), vault.String(org)
}

// nodeText concatenates the text nodes under n
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// trimOneSpace drops a single leading whitespace character
func trimOneSpace(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size > 0 && unicode.IsSpace(r) {
		return s[size:]
	}
	return s
}
