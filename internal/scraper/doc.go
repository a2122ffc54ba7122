// Package scraper provides HTTP fetching and HTML extraction for the free GDC Vault.
//
// The listing page for a conference year is normalized (line breaks and &nbsp; removed,
// whitespace runs collapsed) and parsed with goquery. Every featured list item inside the
// conference section becomes one vault; each of its fields is looked up independently and
// left unset when the markup does not contain it. Overviews live on each talk's own page
// and are fetched by a bounded pool of workers that write results back by position.
package scraper
