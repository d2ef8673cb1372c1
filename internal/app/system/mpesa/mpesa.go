// Package mpesa initiates mobile-money (STK push) donation requests.
// Pushes are simulated: the request is built and logged, not sent.
package mpesa

import (
	"context"
	"encoding/base64"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrNotConfigured is returned when credentials are missing or still the
// sample placeholders.
var ErrNotConfigured = errors.New("mpesa is not configured")

// placeholderKey is the sample consumer key shipped in example env files.
const placeholderKey = "YOUR_CONSUMER_KEY"

// Config holds Daraja credentials.
type Config struct {
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	CallbackURL    string
}

// Configured reports whether every credential is present and real.
func (c Config) Configured() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != "" && c.ShortCode != "" &&
		c.Passkey != "" && c.ConsumerKey != placeholderKey
}

// STKPush is the request body Daraja expects for a customer paybill push.
type STKPush struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// Client builds STK push requests.
type Client struct {
	cfg Config
	log *zap.Logger
	now func() time.Time
}

func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{cfg: cfg, log: logger, now: time.Now}
}

// WithClock replaces the clock used for the request timestamp.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// Timestamp formats t the way Daraja expects (yyyyMMddHHmmss).
func Timestamp(t time.Time) string {
	return t.Format("20060102150405")
}

// Password is base64(shortcode + passkey + timestamp).
func Password(shortCode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortCode + passkey + timestamp))
}

// BuildRequest assembles the STK push body for phone and amount.
func (c *Client) BuildRequest(phone string, amount int64) STKPush {
	ts := Timestamp(c.now())
	return STKPush{
		BusinessShortCode: c.cfg.ShortCode,
		Password:          Password(c.cfg.ShortCode, c.cfg.Passkey, ts),
		Timestamp:         ts,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            amount,
		PartyA:            phone,
		PartyB:            c.cfg.ShortCode,
		PhoneNumber:       phone,
		CallBackURL:       c.cfg.CallbackURL,
		AccountReference:  "GraceHub",
		TransactionDesc:   "Tithe/Offering",
	}
}

// InitiateSTKPush simulates a push to phone. Input is expected to be
// validated by the caller.
func (c *Client) InitiateSTKPush(ctx context.Context, phone string, amount int64) error {
	if !c.cfg.Configured() {
		c.log.Error("mpesa credentials are missing or placeholders")
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	req := c.BuildRequest(phone, amount)
	c.log.Info("simulated STK push",
		zap.String("phone", phone),
		zap.Int64("amount", amount),
		zap.String("shortcode", req.BusinessShortCode),
		zap.String("timestamp", req.Timestamp))
	return nil
}
