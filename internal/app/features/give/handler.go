// internal/app/features/give/handler.go
package give

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/gracehub/internal/app/system/actionresult"
	"github.com/dalemusser/gracehub/internal/app/system/inputval"
	"github.com/dalemusser/gracehub/internal/app/system/jsonio"
	"github.com/dalemusser/gracehub/internal/app/system/metrics"
	"github.com/dalemusser/gracehub/internal/app/system/mpesa"
	"github.com/dalemusser/gracehub/internal/app/system/normalize"
	"github.com/dalemusser/gracehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const (
	msgInvalid       = "Invalid input provided."
	msgNotConfigured = "The payment service is not configured correctly. Please contact support."
	msgSent          = "Check your phone to complete the payment."
)

// Handler starts a mobile-money giving request.
type Handler struct {
	Mpesa   *mpesa.Client
	Log     *zap.Logger
	Metrics *metrics.Metrics
}

func NewHandler(c *mpesa.Client, m *metrics.Metrics, logger *zap.Logger) *Handler {
	return &Handler{Mpesa: c, Log: logger, Metrics: m}
}

type GiveInput struct {
	Phone  string `json:"phone" validate:"min=10" msg:"A valid phone number is required."`
	Amount int64  `json:"amount" validate:"gt=0" msg:"Amount is required."`
}

// Give validates the request and triggers the push.
func (h *Handler) Give(ctx context.Context, in GiveInput) actionresult.Result {
	in.Phone = normalize.Phone(strings.TrimSpace(in.Phone))
	if v := inputval.Validate(&in); v.HasErrors() {
		res := actionresult.Invalid(v)
		res.Message = msgInvalid
		return h.settle(res)
	}

	err := h.Mpesa.InitiateSTKPush(ctx, in.Phone, in.Amount)
	switch {
	case errors.Is(err, mpesa.ErrNotConfigured):
		return h.settle(actionresult.Fail(msgNotConfigured))
	case err != nil:
		h.Log.Error("stk push failed", zap.Error(err))
		return h.settle(actionresult.Fail(actionresult.GenericFailure))
	}
	return h.settle(actionresult.OK(msgSent))
}

func (h *Handler) settle(res actionresult.Result) actionresult.Result {
	h.Metrics.Action("contribution", "stk_push", res.Success)
	return res
}

// HandleGive handles POST /give.
func (h *Handler) HandleGive(w http.ResponseWriter, r *http.Request) {
	var in GiveInput
	if err := jsonio.Decode(w, r, &in); err != nil {
		jsonio.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Upstream(), h.Log, "give.stk_push")
	defer cancel()
	actionresult.Write(w, h.Give(ctx, in))
}
