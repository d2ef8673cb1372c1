// internal/app/features/dashboard/views.go
package dashboard

import (
	"context"
	"net/http"

	"github.com/dalemusser/gracehub/internal/app/ai"
	"github.com/dalemusser/gracehub/internal/app/features/contributions"
	"github.com/dalemusser/gracehub/internal/app/features/creations"
	"github.com/dalemusser/gracehub/internal/app/features/events"
	"github.com/dalemusser/gracehub/internal/app/features/teachings"
	"github.com/dalemusser/gracehub/internal/app/features/team"
	"github.com/dalemusser/gracehub/internal/app/features/users"
	metricsstore "github.com/dalemusser/gracehub/internal/app/store/metrics"
	"github.com/dalemusser/gracehub/internal/app/system/viewcache"
	"golang.org/x/sync/errgroup"
)

// HomeView is the public landing page.
type HomeView struct {
	Events []events.EventView `json:"events"`
	Team   []team.MemberView  `json:"team"`
	Pastor *users.UserView    `json:"pastor"`
}

// MemberView is the signed-in member's dashboard.
type MemberView struct {
	Events     []events.EventView       `json:"events"`
	Teachings  []teachings.TeachingView `json:"teachings"`
	Team       []team.MemberView        `json:"team"`
	Pastor     *users.UserView          `json:"pastor"`
	DailyQuote *ai.DailyQuote           `json:"dailyQuote,omitempty"`
}

// PastorView is the pastor's overview.
type PastorView struct {
	Events        []events.EventView               `json:"events"`
	Teachings     []teachings.TeachingView         `json:"teachings"`
	Members       []users.UserView                 `json:"members"`
	Contributions []contributions.ContributionView `json:"contributions"`
	Counts        metricsstore.Counts              `json:"counts"`
}

// MembersView is the pastor's people page.
type MembersView struct {
	Members []users.UserView  `json:"members"`
	Team    []team.MemberView `json:"team"`
}

// CreationsView lists what the pastor saved from the assistant.
type CreationsView struct {
	EventIdeas     []creations.IdeaView   `json:"eventIdeas"`
	SermonOutlines []creations.SermonView `json:"sermonOutlines"`
}

// The read actions swallow store errors and return empty lists, so the
// group functions below never fail; errgroup only provides the fan-out.

func (h *Handler) buildHome(ctx context.Context) (HomeView, error) {
	var v HomeView
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { v.Events = h.Src.Events.ListEvents(gctx); return nil })
	g.Go(func() error { v.Team = h.Src.Team.ListTeamMembers(gctx); return nil })
	g.Go(func() error { v.Pastor = h.Src.Users.GetPastor(gctx); return nil })
	return v, g.Wait()
}

func (h *Handler) buildMember(ctx context.Context) (MemberView, error) {
	var v MemberView
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { v.Events = h.Src.Events.ListEvents(gctx); return nil })
	g.Go(func() error { v.Teachings = h.Src.Teachings.ListTeachings(gctx); return nil })
	g.Go(func() error { v.Team = h.Src.Team.ListTeamMembers(gctx); return nil })
	g.Go(func() error { v.Pastor = h.Src.Users.GetPastor(gctx); return nil })
	return v, g.Wait()
}

func (h *Handler) buildPastor(ctx context.Context) (PastorView, error) {
	var v PastorView
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { v.Events = h.Src.Events.ListEvents(gctx); return nil })
	g.Go(func() error { v.Teachings = h.Src.Teachings.ListTeachings(gctx); return nil })
	g.Go(func() error { v.Members = h.Src.Users.ListMembers(gctx); return nil })
	g.Go(func() error { v.Contributions = h.Src.Contributions.ListContributions(gctx); return nil })
	g.Go(func() error { v.Counts = metricsstore.FetchDashboardCounts(gctx, h.Src.DB); return nil })
	return v, g.Wait()
}

func (h *Handler) buildMembers(ctx context.Context) (MembersView, error) {
	var v MembersView
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { v.Members = h.Src.Users.ListMembers(gctx); return nil })
	g.Go(func() error { v.Team = h.Src.Team.ListTeamMembers(gctx); return nil })
	return v, g.Wait()
}

func (h *Handler) buildCreations(ctx context.Context) (CreationsView, error) {
	var v CreationsView
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { v.EventIdeas = h.Src.Creations.ListSavedEventIdeas(gctx); return nil })
	g.Go(func() error { v.SermonOutlines = h.Src.Creations.ListSavedSermonOutlines(gctx); return nil })
	return v, g.Wait()
}

// ServeHome handles GET /.
func (h *Handler) ServeHome(w http.ResponseWriter, r *http.Request) {
	serve(w, r, h, viewcache.PathHome, cached(h, viewcache.PathHome, h.buildHome))
}

// ServeMember handles GET /dashboard. The daily quote is attached after the
// snapshot because it changes at midnight, not on writes.
func (h *Handler) ServeMember(w http.ResponseWriter, r *http.Request) {
	serve(w, r, h, viewcache.PathDashboard, h.memberView)
}

func (h *Handler) memberView(ctx context.Context) (MemberView, error) {
	v, err := snapshot(ctx, h, viewcache.PathDashboard, h.buildMember)
	if err != nil {
		return v, err
	}
	if h.Src.AI != nil {
		if q, ok := h.Src.AI.CachedDailyQuote(ctx); ok {
			v.DailyQuote = q
		}
	}
	return v, nil
}

// ServePastor handles GET /pastor/dashboard.
func (h *Handler) ServePastor(w http.ResponseWriter, r *http.Request) {
	serve(w, r, h, viewcache.PathPastorDashboard, cached(h, viewcache.PathPastorDashboard, h.buildPastor))
}

// ServePastorMembers handles GET /pastor/dashboard/members.
func (h *Handler) ServePastorMembers(w http.ResponseWriter, r *http.Request) {
	serve(w, r, h, viewcache.PathPastorMembers, cached(h, viewcache.PathPastorMembers, h.buildMembers))
}

// ServePastorCreations handles GET /pastor/dashboard/creations.
func (h *Handler) ServePastorCreations(w http.ResponseWriter, r *http.Request) {
	serve(w, r, h, viewcache.PathPastorCreations, cached(h, viewcache.PathPastorCreations, h.buildCreations))
}
