// Package feedclient is a stateful consumer of the mood feed API. It
// accumulates pages, tracks filter/search state, and re-fetches from offset
// zero whenever a filter changes. Every filter change bumps an internal
// generation counter and cancels the in-flight request, so a response that
// raced a newer reset is discarded instead of clobbering fresh data.
package feedclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
)

// State is the feed client's lifecycle state
type State int

const (
	StateIdle State = iota
	StateLoadingInitial
	StateLoadingMore
	StateIdleWithData
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingInitial:
		return "loading-initial"
	case StateLoadingMore:
		return "loading-more"
	case StateIdleWithData:
		return "idle-with-data"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// FilterAll means "no constraint" for the tech and rating filters
const FilterAll = "all"

// UserSummary is the flattened owner identity on a feed entry
type UserSummary struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Mood is one feed entry as it appears on the wire
type Mood struct {
	ID      string      `json:"id"`
	Emoji   string      `json:"emoji"`
	Rating  int         `json:"rating"`
	Comment *string     `json:"comment"`
	Tech    *string     `json:"tech"`
	Date    string      `json:"date"`
	User    UserSummary `json:"user"`
}

// MoodsPage is one page of the feed
type MoodsPage struct {
	Data    []Mood `json:"data"`
	Total   int64  `json:"total"`
	HasMore bool   `json:"hasMore"`
}

// Client accumulates feed pages for one filter/search combination. All
// methods are safe for concurrent use; at most one page request per client
// is applied at a time, and a filter change supersedes any in-flight load.
type Client struct {
	baseURL  string
	httpc    *http.Client
	pageSize int

	mu         sync.Mutex
	state      State
	tech       string
	rating     string
	search     string
	moods      []Mood
	total      int64
	hasMore    bool
	offset     int
	generation uint64
	cancel     context.CancelFunc
	lastErr    error
}

// NewClient creates a feed client against the given server base URL.
// A nil httpClient falls back to http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:  baseURL,
		httpc:    httpClient,
		pageSize: 10,
		state:    StateIdle,
		tech:     FilterAll,
		rating:   FilterAll,
		hasMore:  true,
	}
}

// SetPageSize overrides the per-request page size. Must be called before
// the first load.
func (c *Client) SetPageSize(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n > 0 {
		c.pageSize = n
	}
}

// Refresh discards accumulated entries and loads the first page for the
// current filters.
func (c *Client) Refresh(ctx context.Context) error {
	return c.reload(ctx)
}

// SetTech changes the technology filter and reloads from offset zero
func (c *Client) SetTech(ctx context.Context, tech string) error {
	c.mu.Lock()
	c.tech = tech
	c.mu.Unlock()
	return c.reload(ctx)
}

// SetRating changes the rating filter and reloads from offset zero
func (c *Client) SetRating(ctx context.Context, rating string) error {
	c.mu.Lock()
	c.rating = rating
	c.mu.Unlock()
	return c.reload(ctx)
}

// SetSearch changes the search query and reloads from offset zero
func (c *Client) SetSearch(ctx context.Context, search string) error {
	c.mu.Lock()
	c.search = search
	c.mu.Unlock()
	return c.reload(ctx)
}

// reload performs the loading-initial transition: supersede any in-flight
// request, reset the accumulated list and offset, and fetch a fresh first
// page.
func (c *Client) reload(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	if c.cancel != nil {
		c.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancel = cancel
	c.state = StateLoadingInitial
	c.moods = nil
	c.offset = 0
	tech, rating, search := c.tech, c.rating, c.search
	c.mu.Unlock()

	page, err := c.fetchPage(fetchCtx, tech, rating, search, 0)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// A newer reset superseded this response
		return nil
	}
	if err != nil {
		c.state = StateError
		c.lastErr = err
		return err
	}
	c.moods = page.Data
	c.total = page.Total
	c.hasMore = page.HasMore
	c.offset = len(page.Data)
	c.state = StateIdleWithData
	c.lastErr = nil
	return nil
}

// LoadMore fetches the next page at the current offset and appends it.
// It is a no-op unless the client holds data and the server reported more.
func (c *Client) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdleWithData || !c.hasMore {
		c.mu.Unlock()
		return nil
	}
	gen := c.generation
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancel = cancel
	c.state = StateLoadingMore
	tech, rating, search, offset := c.tech, c.rating, c.search, c.offset
	c.mu.Unlock()

	page, err := c.fetchPage(fetchCtx, tech, rating, search, offset)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	if err != nil {
		c.state = StateError
		c.lastErr = err
		return err
	}
	c.moods = append(c.moods, page.Data...)
	c.total = page.Total
	c.hasMore = page.HasMore
	c.offset += len(page.Data)
	c.state = StateIdleWithData
	c.lastErr = nil
	return nil
}

func (c *Client) fetchPage(ctx context.Context, tech, rating, search string, offset int) (*MoodsPage, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.pageSize))
	params.Set("offset", strconv.Itoa(offset))
	if tech != "" && tech != FilterAll {
		params.Set("tech", tech)
	}
	if rating != "" && rating != FilterAll {
		params.Set("rating", rating)
	}
	if search != "" {
		params.Set("search", search)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/moods?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed request failed with status %d", resp.StatusCode)
	}

	var page MoodsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Technologies fetches the facet list for filter UI. It accepts both the
// legacy bare-array shape and the evolved {"technologies": [...]} shape.
func (c *Client) Technologies(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/moods/technologies", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("technologies request failed with status %d", resp.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var techs []string
	if err := json.Unmarshal(raw, &techs); err == nil {
		return techs, nil
	}
	var wrapped struct {
		Technologies []string `json:"technologies"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	return wrapped.Technologies, nil
}

// Moods returns a snapshot of the accumulated entries
func (c *Client) Moods() []Mood {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Mood, len(c.moods))
	copy(out, c.moods)
	return out
}

// State returns the current lifecycle state
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HasMore reports whether the server has entries beyond the accumulated list
func (c *Client) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Total returns the server-reported total for the current filters
func (c *Client) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Err returns the error from the most recent failed load, if any
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
