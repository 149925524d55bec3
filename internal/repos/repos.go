// Package repos lists a user's public repositories for the projects feed.
// Any failure degrades to an empty list.
package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const DefaultBaseURL = "https://api.github.com"

var ErrUpstream = errors.New("repos: upstream request failed")

type Repo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	Language    string `json:"language"`
}

type apiRepo struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	HTMLURL     string  `json:"html_url"`
	Stars       int     `json:"stargazers_count"`
	Forks       int     `json:"forks_count"`
	Language    *string `json:"language"`
}

func (a apiRepo) repo() Repo {
	r := Repo{ID: a.ID, Name: a.Name, URL: a.HTMLURL, Stars: a.Stars, Forks: a.Forks,
		Description: "No description", Language: "N/A"}
	if a.Description != nil && *a.Description != "" {
		r.Description = *a.Description
	}
	if a.Language != nil && *a.Language != "" {
		r.Language = *a.Language
	}
	return r
}

type Client struct {
	base string
	http *http.Client
	ttl  time.Duration
	now  func() time.Time

	mu    sync.Mutex
	cache map[string]cached
}

type cached struct {
	repos []Repo
	at    time.Time
}

type Option func(*Client)

func WithBaseURL(u string) Option { return func(c *Client) { c.base = u } }

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

func WithTTL(d time.Duration) Option { return func(c *Client) { c.ttl = d } }

func New(opts ...Option) *Client {
	c := &Client{
		base:  DefaultBaseURL,
		http:  &http.Client{Timeout: 10 * time.Second},
		ttl:   10 * time.Minute,
		now:   time.Now,
		cache: make(map[string]cached),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// List returns up to nine repositories sorted by stars. On error it returns
// an empty, non-nil slice alongside the error so callers can render as-is.
func (c *Client) List(ctx context.Context, user string) ([]Repo, error) {
	c.mu.Lock()
	if hit, ok := c.cache[user]; ok && c.now().Sub(hit.at) < c.ttl {
		c.mu.Unlock()
		return hit.repos, nil
	}
	c.mu.Unlock()

	repos, err := c.fetch(ctx, user)
	if err != nil {
		return []Repo{}, err
	}

	c.mu.Lock()
	c.cache[user] = cached{repos: repos, at: c.now()}
	c.mu.Unlock()
	return repos, nil
}

func (c *Client) fetch(ctx context.Context, user string) ([]Repo, error) {
	u := fmt.Sprintf("%s/users/%s/repos?sort=stars&per_page=9", c.base, url.PathEscape(user))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var raw []apiRepo
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	out := make([]Repo, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.repo())
	}
	return out, nil
}
