// Package payment integrates the Mercado Pago gateway: card tokenization,
// payment creation (card and PIX) and status polling. Credentials are issued
// per store by the backend and never ship with the client.
package payment

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Yacsu77/tortamaria-go/config"
	"github.com/Yacsu77/tortamaria-go/internal/api"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// credentialTTL bounds how long fetched store credentials are reused when
// the bearer token carries no parseable expiry of its own.
const credentialTTL = 30 * time.Minute

// CredentialSource fetches per-store gateway credentials from the backend.
type CredentialSource interface {
	StoreCredentials(ctx context.Context, cnpj string) (*api.GatewayCredentials, error)
}

// Gateway is the payment gateway client. Tokenization and payment creation
// retry under exponential backoff; status reads never retry automatically.
type Gateway struct {
	cfg      config.GatewayConfig
	source   CredentialSource
	deviceID string

	mu      sync.Mutex
	cnpj    string
	creds   *api.GatewayCredentials
	expires time.Time
}

func NewGateway(cfg config.GatewayConfig, source CredentialSource, deviceID string) *Gateway {
	return &Gateway{cfg: cfg, source: source, deviceID: deviceID}
}

// UseStore points the gateway at a store, dropping any cached credentials.
func (g *Gateway) UseStore(cnpj string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cnpj != cnpj {
		g.cnpj = cnpj
		g.creds = nil
	}
}

// tokenExpiry extracts the exp claim from a bearer token when it happens to
// be a JWT. Opaque tokens get the fixed TTL instead.
func tokenExpiry(token string) time.Time {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return time.Now().Add(credentialTTL)
}

func (g *Gateway) accessToken(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cnpj == "" {
		return "", errors.New("payment: no store selected")
	}
	if g.creds != nil && time.Now().Before(g.expires) {
		return g.creds.AccessToken, nil
	}
	creds, err := g.source.StoreCredentials(ctx, g.cnpj)
	if err != nil {
		return "", errors.Wrap(err, "fetch store gateway credentials")
	}
	g.creds = creds
	g.expires = tokenExpiry(creds.AccessToken)
	zap.L().Debug("payment: credentials refreshed", zap.String("store", g.cnpj),
		zap.Time("expires", g.expires))
	return creds.AccessToken, nil
}

// withRetry runs call under the configured backoff: a fixed small attempt
// count with the delay doubling between attempts. Only gateway write calls
// go through here.
func (g *Gateway) withRetry(ctx context.Context, call func() error) error {
	delay := g.cfg.RetryDelay.Std()
	var err error
	for attempt := 0; ; attempt++ {
		if err = call(); err == nil {
			return nil
		}
		if attempt >= g.cfg.RetryCount {
			return err
		}
		zap.L().Warn("payment: gateway call failed, retrying",
			zap.Int("attempt", attempt+1), zap.Duration("delay", delay), zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func (g *Gateway) post(ctx context.Context, path, token string, in, out interface{}) error {
	var (
		code int
		body []byte
	)
	err := gout.POST(g.cfg.BaseURL + path).
		WithContext(ctx).
		SetTimeout(g.cfg.Timeout.Std()).
		SetHeader(gout.H{
			"Authorization":     "Bearer " + token,
			"X-Idempotency-Key": uuid.NewString(),
			"X-Meli-Session-Id": g.deviceID,
		}).
		SetJSON(in).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		return errors.Wrapf(err, "POST %s", path)
	}
	if code < 200 || code >= 300 {
		return newGatewayError(code, body)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return errors.Wrap(err, "decode gateway response")
		}
	}
	return nil
}

func (g *Gateway) get(ctx context.Context, path, token string, out interface{}) error {
	var (
		code int
		body []byte
	)
	err := gout.GET(g.cfg.BaseURL + path).
		WithContext(ctx).
		SetTimeout(g.cfg.Timeout.Std()).
		SetHeader(gout.H{"Authorization": "Bearer " + token}).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	if code < 200 || code >= 300 {
		return newGatewayError(code, body)
	}
	return json.Unmarshal(body, out)
}

// Card is the card input after client-side masks and checks.
type Card struct {
	Number     string
	ExpMonth   string
	ExpYear    string
	CVV        string
	HolderName string
	HolderCPF  string
}

type cardTokenRequest struct {
	CardNumber      string     `json:"card_number"`
	ExpirationMonth string     `json:"expiration_month"`
	ExpirationYear  string     `json:"expiration_year"`
	SecurityCode    string     `json:"security_code"`
	Cardholder      cardholder `json:"cardholder"`
}

type cardholder struct {
	Name           string         `json:"name"`
	Identification identification `json:"identification"`
}

type identification struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type cardTokenResponse struct {
	ID string `json:"id"`
}

// TokenizeCard exchanges raw card data for a single-use gateway token.
func (g *Gateway) TokenizeCard(ctx context.Context, card Card) (string, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return "", err
	}
	year := card.ExpYear
	if len(year) == 2 {
		year = "20" + year
	}
	month := card.ExpMonth
	if len(month) == 1 {
		month = "0" + month
	}
	req := cardTokenRequest{
		CardNumber:      strings.ReplaceAll(card.Number, " ", ""),
		ExpirationMonth: month,
		ExpirationYear:  year,
		SecurityCode:    card.CVV,
		Cardholder: cardholder{
			Name:           card.HolderName,
			Identification: identification{Type: "CPF", Number: card.HolderCPF},
		},
	}
	var resp cardTokenResponse
	err = g.withRetry(ctx, func() error {
		return g.post(ctx, "/card_tokens", token, req, &resp)
	})
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New("payment: empty card token")
	}
	return resp.ID, nil
}

type paymentRequest struct {
	TransactionAmount float64 `json:"transaction_amount"`
	Token             string  `json:"token,omitempty"`
	Description       string  `json:"description"`
	Installments      int     `json:"installments,omitempty"`
	PaymentMethodID   string  `json:"payment_method_id"`
	Payer             payer   `json:"payer"`
}

type payer struct {
	Email          string         `json:"email"`
	Identification identification `json:"identification"`
}

type transactionData struct {
	QRCode     string `json:"qr_code"`
	Expiration string `json:"qr_code_expiration_date"`
}

type pointOfInteraction struct {
	TransactionData transactionData `json:"transaction_data"`
}

// Payment is the gateway's view of one payment.
type Payment struct {
	ID                 int64              `json:"id"`
	Status             string             `json:"status"`
	StatusDetail       string             `json:"status_detail"`
	PointOfInteraction pointOfInteraction `json:"point_of_interaction"`
}

// Gateway payment statuses the client branches on.
const (
	StatusApproved  = "approved"
	StatusPending   = "pending"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// Terminal reports whether a status ends the payment's lifecycle.
func Terminal(status string) bool {
	switch status {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// CreateCardPayment charges a tokenized card for an order.
func (g *Gateway) CreateCardPayment(ctx context.Context, amount decimal.Decimal, cardToken string, orderID int64, payerEmail, payerCPF string) (*Payment, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	req := paymentRequest{
		TransactionAmount: amount.InexactFloat64(),
		Token:             cardToken,
		Description:       fmt.Sprintf("Pedido #%d", orderID),
		Installments:      1,
		PaymentMethodID:   "master",
		Payer: payer{
			Email:          payerEmail,
			Identification: identification{Type: "CPF", Number: payerCPF},
		},
	}
	var resp Payment
	err = g.withRetry(ctx, func() error {
		return g.post(ctx, "/payments", token, req, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// PIXCharge is what the customer needs to pay a PIX payment.
type PIXCharge struct {
	PaymentID  int64
	QRCode     string
	QRImageURL string
	Expiration string
}

// CreatePIXPayment creates a PIX payment and returns its copy-paste code and
// a rendered QR image URL.
func (g *Gateway) CreatePIXPayment(ctx context.Context, amount decimal.Decimal, orderID int64, payerEmail, payerCPF string) (*PIXCharge, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	req := paymentRequest{
		TransactionAmount: amount.InexactFloat64(),
		Description:       fmt.Sprintf("Pedido #%d", orderID),
		PaymentMethodID:   "pix",
		Payer: payer{
			Email:          payerEmail,
			Identification: identification{Type: "CPF", Number: payerCPF},
		},
	}
	var resp Payment
	err = g.withRetry(ctx, func() error {
		return g.post(ctx, "/payments", token, req, &resp)
	})
	if err != nil {
		return nil, err
	}
	qr := resp.PointOfInteraction.TransactionData.QRCode
	if qr == "" {
		return nil, errors.New("payment: gateway returned no PIX transaction data")
	}
	return &PIXCharge{
		PaymentID:  resp.ID,
		QRCode:     qr,
		QRImageURL: qrImageURL(qr),
		Expiration: resp.PointOfInteraction.TransactionData.Expiration,
	}, nil
}

// qrImageURL renders the PIX copy-paste code as a scannable QR image.
func qrImageURL(code string) string {
	return "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=" + url.QueryEscape(code)
}

// PaymentStatus reads the current status of a payment. Polling calls this
// without retry: the next tick is the retry.
func (g *Gateway) PaymentStatus(ctx context.Context, paymentID int64) (*Payment, error) {
	token, err := g.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	var resp Payment
	if err := g.get(ctx, fmt.Sprintf("/payments/%d", paymentID), token, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
