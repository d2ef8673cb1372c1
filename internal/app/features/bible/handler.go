// internal/app/features/bible/handler.go
package bible

import (
	"errors"
	"net/http"

	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/scripture"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.uber.org/zap"
)

// Handler proxies passage lookups to the scripture service.
type Handler struct {
	Scripture *scripture.Client
	Log       *zap.Logger
}

func NewHandler(c *scripture.Client, logger *zap.Logger) *Handler {
	return &Handler{Scripture: c, Log: logger}
}

// ServePassage handles GET /bible?passage=John+3:16&translation=kjv.
func (h *Handler) ServePassage(w http.ResponseWriter, r *http.Request) {
	ref := query.Get(r, "passage")
	if ref == "" {
		jsonio.Error(w, http.StatusBadRequest, "Please enter a passage, e.g. John 3:16.")
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upstream(), h.Log, "bible.passage")
	defer cancel()

	p, err := h.Scripture.Passage(ctx, ref, query.Get(r, "translation"))
	switch {
	case errors.Is(err, scripture.ErrBadTranslation):
		jsonio.Error(w, http.StatusBadRequest, "Unsupported translation. Use kjv or ksw09.")
	case errors.Is(err, scripture.ErrNotFound):
		jsonio.Error(w, http.StatusNotFound, "Passage not found. Please check the reference.")
	case err != nil:
		h.Log.Warn("scripture lookup failed", zap.String("passage", ref), zap.Error(err))
		jsonio.Error(w, http.StatusBadGateway, "Could not load the passage. Please try again.")
	default:
		jsonio.Write(w, http.StatusOK, p)
	}
}
