package mpesa

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var goodCfg = Config{ConsumerKey: "key", ConsumerSecret: "secret", ShortCode: "174379", Passkey: "pass"}

func TestConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"complete", goodCfg, true},
		{"missing passkey", Config{ConsumerKey: "k", ConsumerSecret: "s", ShortCode: "1"}, false},
		{"placeholder key", Config{ConsumerKey: "YOUR_CONSUMER_KEY", ConsumerSecret: "s", ShortCode: "1", Passkey: "p"}, false},
		{"empty", Config{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Configured())
		})
	}
}

func TestBuildRequest(t *testing.T) {
	at := time.Date(2025, 4, 5, 6, 7, 8, 0, time.UTC)
	c := New(goodCfg, zap.NewNop()).WithClock(func() time.Time { return at })

	req := c.BuildRequest("254712345678", 500)
	assert.Equal(t, "20250405060708", req.Timestamp)
	raw, err := base64.StdEncoding.DecodeString(req.Password)
	require.NoError(t, err)
	assert.Equal(t, "174379pass20250405060708", string(raw))
	assert.Equal(t, int64(500), req.Amount)
	assert.Equal(t, "254712345678", req.PartyA)
	assert.Equal(t, "174379", req.PartyB)
}

func TestInitiateSTKPush(t *testing.T) {
	err := New(Config{ConsumerKey: "YOUR_CONSUMER_KEY"}, nil).InitiateSTKPush(context.Background(), "0712345678", 10)
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.NoError(t, New(goodCfg, nil).InitiateSTKPush(context.Background(), "0712345678", 10))
}
