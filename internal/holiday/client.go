package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/edupulse/timetable-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// Set holds holiday dates keyed by their YYYY-MM-DD form.
type Set map[string]struct{}

// Contains reports whether the date (at any time of day) is a holiday.
func (s Set) Contains(date time.Time) bool {
	_, ok := s[date.Format(dateLayout)]
	return ok
}

// Add inserts a date into the set.
func (s Set) Add(date time.Time) {
	s[date.Format(dateLayout)] = struct{}{}
}

type yearCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Observer receives fetch outcome signals for instrumentation.
type Observer interface {
	HolidayFetch(hit bool)
	HolidayFetchFailed()
}

// Config points the client at a Nager.Date-compatible holiday API.
type Config struct {
	BaseURL     string
	CountryCode string
	Timeout     time.Duration
	CacheTTL    time.Duration
}

// Client fetches public holidays per calendar year, with Redis-backed
// caching. Fetch failures degrade to an empty set for the failing year so
// generation never depends on the holiday source being reachable.
type Client struct {
	baseURL  string
	country  string
	cacheTTL time.Duration
	http     *http.Client
	cache    yearCache
	observer Observer
	logger   *zap.Logger
}

// New constructs a holiday client.
func New(cfg Config, cache yearCache, observer Observer, logger *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		country:  cfg.CountryCode,
		cacheTTL: cfg.CacheTTL,
		http:     &http.Client{Timeout: cfg.Timeout},
		cache:    cache,
		observer: observer,
		logger:   logger,
	}
}

// Range returns the union of holiday dates falling within [from, to],
// fetching each covered calendar year at most once. Years that cannot be
// fetched contribute nothing; the degradation is logged, not surfaced.
func (c *Client) Range(ctx context.Context, from, to time.Time) Set {
	result := make(Set)
	for year := from.Year(); year <= to.Year(); year++ {
		dates, err := c.year(ctx, year)
		if err != nil {
			if c.observer != nil {
				c.observer.HolidayFetchFailed()
			}
			c.logger.Warn("holiday fetch failed, treating year as holiday-free",
				zap.Int("year", year), zap.Error(err))
			continue
		}
		for _, raw := range dates {
			parsed, parseErr := time.Parse(dateLayout, raw)
			if parseErr != nil {
				continue
			}
			if parsed.Before(from) || parsed.After(to) {
				continue
			}
			result[raw] = struct{}{}
		}
	}
	return result
}

func (c *Client) year(ctx context.Context, year int) ([]string, error) {
	key := fmt.Sprintf("holidays:%s:%d", c.country, year)

	if c.cache != nil {
		var cached []string
		err := c.cache.Get(ctx, key, &cached)
		if err == nil {
			if c.observer != nil {
				c.observer.HolidayFetch(true)
			}
			return cached, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			c.logger.Warn("holiday cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	dates, err := c.fetchYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if c.observer != nil {
		c.observer.HolidayFetch(false)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, dates, c.cacheTTL); err != nil {
			c.logger.Warn("holiday cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return dates, nil
}

type publicHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

func (c *Client) fetchYear(ctx context.Context, year int) ([]string, error) {
	url := fmt.Sprintf("%s/api/v3/PublicHolidays/%d/%s", c.baseURL, year, c.country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build holiday request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch holidays for %d: %w", year, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday source returned status %d for %d", resp.StatusCode, year)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read holiday response: %w", err)
	}

	var holidays []publicHoliday
	if err := json.Unmarshal(body, &holidays); err != nil {
		return nil, fmt.Errorf("decode holiday response: %w", err)
	}

	dates := make([]string, 0, len(holidays))
	for _, h := range holidays {
		if h.Date != "" {
			dates = append(dates, h.Date)
		}
	}
	return dates, nil
}
