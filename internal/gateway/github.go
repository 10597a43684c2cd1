// Package gateway provides a gateway to the GitHub REST API,
// fetching paginated listings through a page cache.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"

	"golang.org/x/oauth2"

	"github.com/jakubvalenta/github-metrics/internal/cache"
)

const defaultBaseURL = "https://api.github.com"

// acceptHeader asks the API for its structured JSON media type.
const acceptHeader = "application/vnd.github+json"

// nextLinkRe matches the rel="next" relation of a Link response header.
var nextLinkRe = regexp.MustCompile(`<([^<>]+)>;\s*rel="next"`)

// Lister defines the behavior of a gateway for listing pull requests.
type Lister interface {
	ListClosedPullRequests(ctx context.Context, owner, repo string, fn func(item json.RawMessage) error) error
}

// Gateway is the concrete implementation of the Lister interface. It fetches
// pages sequentially and consults the cache store before every network call.
type Gateway struct {
	httpClient *http.Client
	store      cache.Store
	logger     *log.Logger
	baseURL    string
}

// NewGateway is a constructor that creates a new instance of Gateway.
// Every request it issues carries the token as a bearer credential.
func NewGateway(token string, store cache.Store, logger *log.Logger) *Gateway {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Gateway{
		httpClient: &http.Client{Transport: &oauth2.Transport{Source: ts}},
		store:      store,
		logger:     logger,
		baseURL:    defaultBaseURL,
	}
}

// ListClosedPullRequests walks every page of the repository's closed pull
// request listing, following rel="next" links until none remains, and invokes
// fn once per raw item in page order. The item sequence is identical whether
// a page comes from the cache or from the network. A non-nil error from fn
// aborts the walk.
func (g *Gateway) ListClosedPullRequests(ctx context.Context, owner, repo string, fn func(item json.RawMessage) error) error {
	url := fmt.Sprintf("%s/repos/%s/%s/pulls?state=closed", g.baseURL, owner, repo)
	for url != "" {
		page, err := g.fetchPage(ctx, url)
		if err != nil {
			return err
		}
		for _, item := range page.Items {
			if err := fn(item); err != nil {
				return err
			}
		}
		url = ""
		if page.NextURL != nil {
			url = *page.NextURL
		}
	}
	return nil
}

// fetchPage returns the page behind url. A cache hit costs no network call;
// a miss is fetched, persisted to the store, and only then returned, so a
// later run replays the exact same page.
func (g *Gateway) fetchPage(ctx context.Context, url string) (*cache.Page, error) {
	cached, err := g.store.Get(url)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		g.logger.Printf("Cache hit for %s", url)
		return cached, nil
	}

	g.logger.Printf("Fetching %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Accept", acceptHeader)
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	var items []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decoding page %s: %w", url, err)
	}
	page := &cache.Page{Items: items}
	if m := nextLinkRe.FindStringSubmatch(resp.Header.Get("Link")); m != nil {
		page.NextURL = &m[1]
	}
	if err := g.store.Put(url, page); err != nil {
		return nil, err
	}
	return page, nil
}
