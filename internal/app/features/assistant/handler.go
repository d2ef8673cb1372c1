// internal/app/features/assistant/handler.go
package assistant

import (
	"net/http"

	"github.com/dalemusser/gracehub/internal/app/ai"
	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/inputval"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/metrics"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const (
	msgIdeasFailed   = "An error occurred while generating ideas. Please try again."
	msgSermonFailed  = "An error occurred while generating the sermon outline. Please try again."
	msgCounselFailed = "An error occurred while seeking guidance. Please try again."
	msgQuoteFailed   = "The daily quote is unavailable right now."
)

// Handler exposes the AI prompt flows over HTTP.
type Handler struct {
	AI      *ai.Service
	Log     *zap.Logger
	Metrics *metrics.Metrics
}

func NewHandler(svc *ai.Service, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{AI: svc, Log: logger, Metrics: m}
}

type EventIdeasInput struct {
	Keywords string `json:"keywords" validate:"required,max=500" label:"Keywords"`
}

type SermonOutlineInput struct {
	Topic      string `json:"topic" validate:"required,max=500" label:"Topic"`
	Scriptures string `json:"scriptures" validate:"max=1000" label:"Scriptures"`
}

type CounselInput struct {
	Problem string `json:"problem" validate:"required,min=10,max=4000" label:"Your message"`
}

// decode reads and validates the body. It writes the response and returns
// false when the request cannot proceed.
func decode[T any](w http.ResponseWriter, r *http.Request, in *T) bool {
	if err := jsonio.Decode(w, r, in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return false
	}
	if v := inputval.Validate(in); v.HasErrors() {
		actionresult.Write(w, actionresult.Invalid(v))
		return false
	}
	return true
}

// HandleEventIdeas handles POST /pastor/assistant/event-ideas.
func (h *Handler) HandleEventIdeas(w http.ResponseWriter, r *http.Request) {
	var in EventIdeasInput
	if !decode(w, r, &in) {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upstream(), h.Log, "assistant.event_ideas")
	defer cancel()

	ideas, err := h.AI.EventIdeas(ctx, in.Keywords)
	h.Metrics.Action("ai", "event_ideas", err == nil)
	if err != nil {
		h.Log.Warn("event ideas failed", zap.Error(err))
		jsonio.Error(w, http.StatusBadGateway, msgIdeasFailed)
		return
	}
	jsonio.Write(w, http.StatusOK, map[string]any{"success": true, "eventIdeas": ideas})
}

// HandleSermonOutline handles POST /pastor/assistant/sermon-outline.
func (h *Handler) HandleSermonOutline(w http.ResponseWriter, r *http.Request) {
	var in SermonOutlineInput
	if !decode(w, r, &in) {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upstream(), h.Log, "assistant.sermon_outline")
	defer cancel()

	out, err := h.AI.SermonOutline(ctx, in.Topic, in.Scriptures)
	h.Metrics.Action("ai", "sermon_outline", err == nil)
	if err != nil {
		h.Log.Warn("sermon outline failed", zap.Error(err))
		jsonio.Error(w, http.StatusBadGateway, msgSermonFailed)
		return
	}
	jsonio.Write(w, http.StatusOK, map[string]any{
		"success":     true,
		"sermonTitle": out.SermonTitle,
		"outline":     out.Outline,
	})
}

// HandleCounsel handles POST /counsel for signed-in members.
func (h *Handler) HandleCounsel(w http.ResponseWriter, r *http.Request) {
	var in CounselInput
	if !decode(w, r, &in) {
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upstream(), h.Log, "assistant.counsel")
	defer cancel()

	out, err := h.AI.Counsel(ctx, in.Problem)
	h.Metrics.Action("ai", "counsel", err == nil)
	if err != nil {
		h.Log.Warn("counsel failed", zap.Error(err))
		jsonio.Error(w, http.StatusBadGateway, msgCounselFailed)
		return
	}
	jsonio.Write(w, http.StatusOK, map[string]any{
		"success":            true,
		"hopefulMessage":     out.HopefulMessage,
		"relevantScriptures": out.RelevantScriptures,
		"practicalAdvice":    out.PracticalAdvice,
	})
}

// ServeDailyQuote handles GET /daily-quote.
func (h *Handler) ServeDailyQuote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upstream(), h.Log, "assistant.daily_quote")
	defer cancel()

	q, err := h.AI.DailyQuote(ctx)
	if err != nil {
		h.Log.Warn("daily quote failed", zap.Error(err))
		jsonio.Error(w, http.StatusServiceUnavailable, msgQuoteFailed)
		return
	}
	jsonio.Write(w, http.StatusOK, q)
}
