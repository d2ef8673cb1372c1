// Package scripture fetches Bible passages from a bible-api.com compatible
// service and caches them.
package scripture

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when the reference does not resolve.
	ErrNotFound = errors.New("scripture not found")
	// ErrUpstream is returned when the scripture service fails.
	ErrUpstream = errors.New("scripture service unavailable")
	// ErrBadTranslation is returned for translations we do not serve.
	ErrBadTranslation = errors.New("unsupported translation")
)

// Supported translations.
const (
	KJV     = "kjv"
	Swahili = "ksw09"
)

const DefaultBaseURL = "https://bible-api.com"

// Verse is a single verse of a passage.
type Verse struct {
	BookID   string `json:"book_id"`
	BookName string `json:"book_name"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
	Text     string `json:"text"`
}

// Passage is a resolved reference.
type Passage struct {
	Reference       string  `json:"reference"`
	Verses          []Verse `json:"verses"`
	Text            string  `json:"text"`
	TranslationID   string  `json:"translation_id"`
	TranslationName string  `json:"translation_name"`
	TranslationNote string  `json:"translation_note,omitempty"`
}

// Client looks up passages.
type Client struct {
	base  string
	http  *http.Client
	cache viewcache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// New creates a client. Blank base uses DefaultBaseURL; nil cache disables caching.
func New(base string, httpClient *http.Client, cache viewcache.Cache, ttl time.Duration, logger *zap.Logger) *Client {
	if base == "" {
		base = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if cache == nil {
		cache = viewcache.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{base: strings.TrimRight(base, "/"), http: httpClient, cache: cache, ttl: ttl, log: logger}
}

// NormalizeTranslation maps blank to KJV and rejects unknown translations.
func NormalizeTranslation(t string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "", KJV:
		return KJV, nil
	case Swahili:
		return Swahili, nil
	}
	return "", ErrBadTranslation
}

func cacheKey(reference, translation string) string {
	return "scripture:" + translation + ":" + strings.ToLower(reference)
}

// Passage resolves reference (e.g. "John 3" or "John 3:16") in translation.
func (c *Client) Passage(ctx context.Context, reference, translation string) (*Passage, error) {
	reference = strings.Join(strings.Fields(reference), " ")
	if reference == "" {
		return nil, ErrNotFound
	}
	translation, err := NormalizeTranslation(translation)
	if err != nil {
		return nil, err
	}

	key := cacheKey(reference, translation)
	var cached Passage
	if ok, err := c.cache.Get(ctx, key, &cached); err != nil {
		c.log.Warn("scripture cache read failed", zap.Error(err))
	} else if ok {
		return &cached, nil
	}

	u := c.base + "/" + url.PathEscape(reference) + "?translation=" + url.QueryEscape(translation)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("scripture request failed", zap.String("reference", reference), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode != http.StatusOK:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var p Passage
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrUpstream, err)
	}
	if len(p.Verses) == 0 {
		return nil, ErrNotFound
	}

	if err := c.cache.Set(ctx, key, p, c.ttl); err != nil {
		c.log.Warn("scripture cache write failed", zap.Error(err))
	}
	return &p, nil
}
