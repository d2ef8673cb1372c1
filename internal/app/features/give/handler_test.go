package give_test

import (
	"context"
	"testing"

	"github.com/dalemusser/gracehub/internal/app/features/give"
	"github.com/dalemusser/gracehub/internal/app/system/mpesa"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var configured = mpesa.Config{
	ConsumerKey:    "key",
	ConsumerSecret: "secret",
	ShortCode:      "174379",
	Passkey:        "passkey",
}

func TestGive(t *testing.T) {
	ctx := context.Background()
	h := give.NewHandler(mpesa.New(configured, zap.NewNop()), nil, zap.NewNop())

	res := h.Give(ctx, give.GiveInput{Phone: "0712 345 678", Amount: 500})
	assert.True(t, res.Success)
	assert.Equal(t, "Check your phone to complete the payment.", res.Message)

	res = h.Give(ctx, give.GiveInput{Phone: "0712", Amount: 0})
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid input provided.", res.Message)
	assert.Equal(t, []string{"A valid phone number is required."}, res.Errors["phone"])
	assert.Equal(t, []string{"Amount is required."}, res.Errors["amount"])
}

func TestGive_NotConfigured(t *testing.T) {
	h := give.NewHandler(mpesa.New(mpesa.Config{ConsumerKey: "YOUR_CONSUMER_KEY"}, zap.NewNop()), nil, zap.NewNop())

	res := h.Give(context.Background(), give.GiveInput{Phone: "0712345678", Amount: 100})
	assert.False(t, res.Success)
	assert.Equal(t, "The payment service is not configured correctly. Please contact support.", res.Message)
}
