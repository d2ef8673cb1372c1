package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeGen struct {
	out     string
	err     error
	calls   int
	prompts []string
}

func (f *fakeGen) GenerateJSON(_ context.Context, prompt string, _ *genai.Schema) ([]byte, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(f.out), nil
}

func TestEventIdeas(t *testing.T) {
	gen := &fakeGen{out: `{"eventIdeas":[
		{"title":"Harvest Fair","description":"A thanksgiving fair."},
		{"title":"","description":"dropped"},
		{"title":"Youth Night","description":"Worship and games."},
		{"title":"Prayer Walk","description":"Walk and pray."},
		{"title":"Extra","description":"Only three are kept."}]}`}
	svc := NewService(gen, nil, zap.NewNop())

	ideas, err := svc.EventIdeas(context.Background(), "youth, <b>harvest</b>")
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	assert.Equal(t, "Harvest Fair", ideas[0].Title)
	assert.Equal(t, "Prayer Walk", ideas[2].Title)
	assert.Contains(t, gen.prompts[0], "keywords: youth, harvest.")
}

func TestEventIdeas_MalformedJSON(t *testing.T) {
	svc := NewService(&fakeGen{out: `not json`}, nil, zap.NewNop())
	_, err := svc.EventIdeas(context.Background(), "x")
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestSermonOutline(t *testing.T) {
	gen := &fakeGen{out: `{"sermonTitle":"Living Hope","outline":[
		{"pointTitle":"Introduction","content":"Hope matters."},
		{"pointTitle":"Main Point 1","content":"Anchor","supportingVerses":["Hebrews 6:19"]}]}`}
	svc := NewService(gen, nil, zap.NewNop())

	out, err := svc.SermonOutline(context.Background(), "Hope", "1 Peter 1:3")
	require.NoError(t, err)
	assert.Equal(t, "Living Hope", out.SermonTitle)
	require.Len(t, out.Outline, 2)
	assert.NotNil(t, out.Outline[0].SupportingVerses)
	assert.Equal(t, []string{"Hebrews 6:19"}, out.Outline[1].SupportingVerses)
	assert.Contains(t, gen.prompts[0], "Topic: Hope")
	assert.Contains(t, gen.prompts[0], "Key Scriptures: 1 Peter 1:3")
}

func TestSermonOutline_EmptyOutlineFails(t *testing.T) {
	svc := NewService(&fakeGen{out: `{"sermonTitle":"T","outline":[]}`}, nil, zap.NewNop())
	_, err := svc.SermonOutline(context.Background(), "t", "s")
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestCounsel(t *testing.T) {
	gen := &fakeGen{out: `{"hopefulMessage":"You are loved.","relevantScriptures":["Psalm 34:18"],"practicalAdvice":"Pray daily."}`}
	svc := NewService(gen, nil, zap.NewNop())

	out, err := svc.Counsel(context.Background(), "I feel anxious")
	require.NoError(t, err)
	assert.Equal(t, "You are loved.", out.HopefulMessage)
	assert.Equal(t, []string{"Psalm 34:18"}, out.RelevantScriptures)
	assert.Contains(t, gen.prompts[0], "The user is struggling with: I feel anxious")
}

func TestCounsel_GeneratorErrorPropagates(t *testing.T) {
	svc := NewService(&fakeGen{err: ErrGeneration}, nil, zap.NewNop())
	_, err := svc.Counsel(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrGeneration))
}

func TestUnconfigured(t *testing.T) {
	svc := NewService(nil, nil, nil)
	_, err := svc.EventIdeas(context.Background(), "x")
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestDailyQuote_CachedUntilMidnight(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	now := time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC)
	gen := &fakeGen{out: `{"quote":"Grace is enough.","verse":"2 Corinthians 12:9"}`}
	svc := NewService(gen, viewcache.NewRedis(rdb), zap.NewNop()).WithClock(func() time.Time { return now })

	_, ok := svc.CachedDailyQuote(context.Background())
	assert.False(t, ok)

	q, err := svc.DailyQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Grace is enough.", q.Quote)

	q2, err := svc.DailyQuote(context.Background())
	require.NoError(t, err)
	assert.Equal(t, q, q2)
	assert.Equal(t, 1, gen.calls)

	ttl := mr.TTL("gracehub:view:ai:daily-quote:2025-03-10")
	assert.Equal(t, 2*time.Hour, ttl)

	require.NoError(t, svc.WarmDailyQuote(context.Background()))
	assert.Equal(t, 1, gen.calls, "warm must not regenerate a cached quote")
}

func TestUntilMidnight(t *testing.T) {
	now := time.Date(2025, 12, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, 30*time.Minute, untilMidnight(now))
}

func TestPromptsRender(t *testing.T) {
	p, err := render(dailyQuoteTmpl, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "You are a source of daily encouragement"))
}
