package dblp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// PublicationInfo is the inner info payload of a publication search hit.
type PublicationInfo map[string]any

type authorSearchResponse struct {
	Result struct {
		Hits struct {
			Hit []struct {
				Info struct {
					URL string `json:"url"`
				} `json:"info"`
			} `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

type publSearchResponse struct {
	Result struct {
		Hits struct {
			First string `json:"@first"`
			Sent  string `json:"@sent"`
			Total string `json:"@total"`
			Hit   []struct {
				Info PublicationInfo `json:"info"`
			} `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

// SearchAuthors queries the author search endpoint and resolves every
// hit to a loaded Author, with at most maxWorkers resolutions in
// flight. A hit whose URL resolution or profile load fails is logged
// and dropped without affecting the others, so the result keeps the
// hit order of the remaining entries. A response with no hit list
// yields an empty, non-error result.
func (c *Client) SearchAuthors(ctx context.Context, name, affiliation string) ([]*Author, error) {
	query := name
	if affiliation != "" {
		query += " :affiliation:" + affiliation
	}

	params := url.Values{"q": {query}, "format": {"json"}}
	_, body, err := c.get(ctx, authorSearchPath, params)
	if err != nil {
		return nil, err
	}

	var resp authorSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: parsing author search results: %v", ErrInvalidResponse, err)
	}

	hits := resp.Result.Hits.Hit
	if len(hits) == 0 {
		return []*Author{}, nil
	}

	// One slot per hit keeps submission order; dropped hits stay nil.
	authors := make([]*Author, len(hits))
	sem := make(chan struct{}, c.maxWorkers)
	var wg sync.WaitGroup
	for i, hit := range hits {
		wg.Add(1)
		go func(i int, rawURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			author, err := c.resolveAuthorURL(ctx, rawURL)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("url", rawURL).
					Msg("dropping author hit")
				return
			}
			authors[i] = author
		}(i, hit.Info.URL)
	}
	wg.Wait()

	results := make([]*Author, 0, len(hits))
	for _, a := range authors {
		if a != nil {
			results = append(results, a)
		}
	}
	return results, nil
}

// resolveAuthorURL follows redirects on a hit URL to the canonical
// profile URL, derives the author identifier from its two trailing
// path segments, and loads the profile.
func (c *Client) resolveAuthorURL(ctx context.Context, rawURL string) (*Author, error) {
	finalURL, _, err := c.getURL(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(finalURL)
	if err != nil {
		return nil, fmt.Errorf("%w: resolved URL %q: %v", ErrInvalidResponse, finalURL, err)
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segs) < 2 {
		return nil, fmt.Errorf("%w: resolved URL %q carries no author identifier", ErrInvalidResponse, finalURL)
	}

	author := c.Author(segs[len(segs)-2], segs[len(segs)-1])
	if _, err := author.Record(ctx); err != nil {
		return nil, err
	}
	return author, nil
}

// publPage is one decoded slice of publication search results.
type publPage struct {
	first, sent, total int
	infos              []PublicationInfo
}

func (c *Client) searchPublPage(ctx context.Context, query string, offset int) (*publPage, error) {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"h":      {strconv.Itoa(DefaultPageSize)},
		"f":      {strconv.Itoa(offset)},
	}
	_, body, err := c.get(ctx, publSearchPath, params)
	if err != nil {
		return nil, err
	}

	var resp publSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: parsing publication search results: %v", ErrInvalidResponse, err)
	}

	hits := resp.Result.Hits
	page := &publPage{}
	if page.first, err = countField(hits.First, "@first"); err != nil {
		return nil, err
	}
	if page.sent, err = countField(hits.Sent, "@sent"); err != nil {
		return nil, err
	}
	if page.total, err = countField(hits.Total, "@total"); err != nil {
		return nil, err
	}
	for _, h := range hits.Hit {
		page.infos = append(page.infos, h.Info)
	}
	return page, nil
}

func countField(s, name string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: hits count %s is not numeric (%q)", ErrInvalidResponse, name, s)
	}
	return n, nil
}

// SearchPublications sweeps the publication search endpoint for each
// target year, submitting continuation pages as server-reported totals
// reveal them, with at most maxWorkers requests in flight. Hits are
// reduced to their info payloads; cross-page ordering of the aggregate
// is unspecified. A failed page does not abort the sweep: its error is
// collected and the joined page errors are returned alongside whatever
// pages did land, so a nil error means the sweep is complete and a
// non-nil error accompanies partial results.
func (c *Client) SearchPublications(ctx context.Context, query string, years []int, venue string) ([]PublicationInfo, error) {
	base := query
	if venue != "" {
		base += " venue:" + venue
	}

	var (
		mu       sync.Mutex
		results  []PublicationInfo
		pageErrs []error
		wg       sync.WaitGroup
	)
	sem := make(chan struct{}, c.maxWorkers)

	var fetch func(q string, offset int)
	fetch = func(q string, offset int) {
		defer wg.Done()
		sem <- struct{}{}
		defer func() { <-sem }()

		if err := ctx.Err(); err != nil {
			mu.Lock()
			pageErrs = append(pageErrs, err)
			mu.Unlock()
			return
		}

		page, err := c.searchPublPage(ctx, q, offset)
		if err != nil {
			c.logger.Warn().
				Err(err).
				Str("query", q).
				Int("offset", offset).
				Msg("publication page failed")
			mu.Lock()
			pageErrs = append(pageErrs, fmt.Errorf("query %q offset %d: %w", q, offset, err))
			mu.Unlock()
			return
		}
		if page.total == 0 || len(page.infos) == 0 {
			return
		}

		mu.Lock()
		results = append(results, page.infos...)
		mu.Unlock()
		c.logger.Debug().
			Str("query", q).
			Int("offset", offset).
			Int("hits", len(page.infos)).
			Int("total", page.total).
			Msg("publication page fetched")

		if next := page.first + page.sent; next < page.total {
			wg.Add(1)
			go fetch(q, next)
		}
	}

	for _, year := range years {
		wg.Add(1)
		go fetch(base+" year:"+strconv.Itoa(year), 0)
	}
	wg.Wait()

	return results, errors.Join(pageErrs...)
}
