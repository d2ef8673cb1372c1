package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dalemusser/gracehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"github.com/dalemusser/gracehub/internal/domain/models"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// EventIdea is one suggested church event.
type EventIdea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SermonOutline is a generated sermon structure.
type SermonOutline struct {
	SermonTitle string               `json:"sermonTitle"`
	Outline     []models.SermonPoint `json:"outline"`
}

// DailyQuote is the quote of the day and its verse.
type DailyQuote struct {
	Quote string `json:"quote"`
	Verse string `json:"verse"`
}

// Counsel is a pastoral response to a personal struggle.
type Counsel struct {
	HopefulMessage     string   `json:"hopefulMessage"`
	RelevantScriptures []string `json:"relevantScriptures"`
	PracticalAdvice    string   `json:"practicalAdvice"`
}

// Service runs the prompt flows.
type Service struct {
	gen   Generator
	cache viewcache.Cache
	log   *zap.Logger
	now   func() time.Time
}

// NewService builds a Service. A nil cache disables daily-quote caching.
func NewService(gen Generator, cache viewcache.Cache, logger *zap.Logger) *Service {
	if gen == nil {
		gen = Unconfigured{}
	}
	if cache == nil {
		cache = viewcache.Noop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gen: gen, cache: cache, log: logger, now: time.Now}
}

// WithClock replaces the clock used for the daily-quote cache window.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) run(ctx context.Context, flow string, t *template.Template, data any, schema *genai.Schema, out any) error {
	prompt, err := render(t, data)
	if err != nil {
		return fmt.Errorf("%w: render %s prompt: %v", ErrGeneration, flow, err)
	}
	raw, err := s.gen.GenerateJSON(ctx, prompt, schema)
	if err != nil {
		s.log.Warn("ai flow failed", zap.String("flow", flow), zap.Error(err))
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Warn("ai flow returned malformed JSON", zap.String("flow", flow), zap.Error(err))
		return fmt.Errorf("%w: decode %s: %v", ErrGeneration, flow, err)
	}
	return nil
}

// EventIdeas suggests three events for comma-separated keywords.
func (s *Service) EventIdeas(ctx context.Context, keywords string) ([]EventIdea, error) {
	var out struct {
		EventIdeas []EventIdea `json:"eventIdeas"`
	}
	data := struct{ Keywords string }{htmlsanitize.Plain(keywords)}
	if err := s.run(ctx, "event_ideas", eventIdeasTmpl, data, eventIdeasSchema, &out); err != nil {
		return nil, err
	}
	ideas := out.EventIdeas[:0]
	for _, idea := range out.EventIdeas {
		if strings.TrimSpace(idea.Title) != "" && strings.TrimSpace(idea.Description) != "" {
			ideas = append(ideas, idea)
		}
	}
	if len(ideas) == 0 {
		return nil, fmt.Errorf("%w: no event ideas", ErrGeneration)
	}
	if len(ideas) > 3 {
		ideas = ideas[:3]
	}
	return ideas, nil
}

// SermonOutline drafts a sermon for a topic and key scriptures.
func (s *Service) SermonOutline(ctx context.Context, topic, scriptures string) (*SermonOutline, error) {
	var out SermonOutline
	data := struct{ Topic, Scriptures string }{htmlsanitize.Plain(topic), htmlsanitize.Plain(scriptures)}
	if err := s.run(ctx, "sermon_outline", sermonOutlineTmpl, data, sermonOutlineSchema, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.SermonTitle) == "" || len(out.Outline) == 0 {
		return nil, fmt.Errorf("%w: incomplete sermon outline", ErrGeneration)
	}
	for i := range out.Outline {
		if out.Outline[i].SupportingVerses == nil {
			out.Outline[i].SupportingVerses = []string{}
		}
	}
	return &out, nil
}

// Counsel answers a member's personal struggle.
func (s *Service) Counsel(ctx context.Context, problem string) (*Counsel, error) {
	var out Counsel
	data := struct{ Problem string }{htmlsanitize.Plain(problem)}
	if err := s.run(ctx, "counsel", counselTmpl, data, counselSchema, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.HopefulMessage) == "" || strings.TrimSpace(out.PracticalAdvice) == "" {
		return nil, fmt.Errorf("%w: incomplete counsel", ErrGeneration)
	}
	if out.RelevantScriptures == nil {
		out.RelevantScriptures = []string{}
	}
	return &out, nil
}

/* ------------------------------- daily quote ------------------------------- */

func dailyQuoteKey(day time.Time) string {
	return "ai:daily-quote:" + day.Format("2006-01-02")
}

// untilMidnight is the time left before the next local midnight.
func untilMidnight(now time.Time) time.Duration {
	y, m, d := now.Date()
	next := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now)
}

// CachedDailyQuote returns today's quote if one has been generated.
func (s *Service) CachedDailyQuote(ctx context.Context) (*DailyQuote, bool) {
	var q DailyQuote
	ok, err := s.cache.Get(ctx, dailyQuoteKey(s.now()), &q)
	if err != nil {
		s.log.Warn("daily quote cache read failed", zap.Error(err))
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &q, true
}

// DailyQuote returns today's quote, generating and caching it until local
// midnight on first use.
func (s *Service) DailyQuote(ctx context.Context) (*DailyQuote, error) {
	if q, ok := s.CachedDailyQuote(ctx); ok {
		return q, nil
	}
	return s.generateDailyQuote(ctx)
}

func (s *Service) generateDailyQuote(ctx context.Context) (*DailyQuote, error) {
	var q DailyQuote
	if err := s.run(ctx, "daily_quote", dailyQuoteTmpl, nil, dailyQuoteSchema, &q); err != nil {
		return nil, err
	}
	if strings.TrimSpace(q.Quote) == "" || strings.TrimSpace(q.Verse) == "" {
		return nil, fmt.Errorf("%w: incomplete daily quote", ErrGeneration)
	}
	now := s.now()
	if err := s.cache.Set(ctx, dailyQuoteKey(now), q, untilMidnight(now)); err != nil {
		s.log.Warn("daily quote cache write failed", zap.Error(err))
	}
	return &q, nil
}

// WarmDailyQuote generates today's quote unless one is already cached.
func (s *Service) WarmDailyQuote(ctx context.Context) error {
	if _, ok := s.CachedDailyQuote(ctx); ok {
		return nil
	}
	_, err := s.generateDailyQuote(ctx)
	return err
}
