package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Yacsu77/tortamaria-go/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// APIError is a non-2xx backend response. The backend reports business-rule
// rejections with a human-readable message under a handful of keys.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %s (HTTP %d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("api: HTTP %d", e.StatusCode)
}

// IsBusinessError reports whether err is a backend rejection carrying a
// message meant for the user, as opposed to a transport failure.
func IsBusinessError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Message != ""
}

type errorBody struct {
	Erro     string `json:"erro"`
	Error    string `json:"error"`
	Message  string `json:"message"`
	Mensagem string `json:"mensagem"`
}

func (b errorBody) first() string {
	for _, m := range []string{b.Erro, b.Error, b.Message, b.Mensagem} {
		if m != "" {
			return m
		}
	}
	return ""
}

// Client talks to the storefront backend. All calls are plain REST: the
// client renders results and forwards input, the backend owns every business
// rule. Listing calls are never retried automatically; the user refreshes.
type Client struct {
	baseURL string
	timeout time.Duration
}

func NewClient(cfg config.BackendConfig) *Client {
	return &Client{baseURL: cfg.BaseURL, timeout: cfg.Timeout.Std()}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

func decode(code int, body []byte, out interface{}) error {
	if code < 200 || code >= 300 {
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		return &APIError{StatusCode: code, Message: eb.first()}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	var (
		code int
		body []byte
	)
	err := gout.GET(c.url(path)).
		WithContext(ctx).
		SetTimeout(c.timeout).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		zap.L().Debug("api: GET failed", zap.String("path", path), zap.Error(err))
		return errors.Wrapf(err, "GET %s", path)
	}
	return decode(code, body, out)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	var (
		code int
		body []byte
	)
	err := gout.POST(c.url(path)).
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetJSON(in).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		zap.L().Debug("api: POST failed", zap.String("path", path), zap.Error(err))
		return errors.Wrapf(err, "POST %s", path)
	}
	return decode(code, body, out)
}

func (c *Client) put(ctx context.Context, path string, in, out interface{}) error {
	var (
		code int
		body []byte
	)
	err := gout.PUT(c.url(path)).
		WithContext(ctx).
		SetTimeout(c.timeout).
		SetJSON(in).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		zap.L().Debug("api: PUT failed", zap.String("path", path), zap.Error(err))
		return errors.Wrapf(err, "PUT %s", path)
	}
	return decode(code, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	var (
		code int
		body []byte
	)
	err := gout.DELETE(c.url(path)).
		WithContext(ctx).
		SetTimeout(c.timeout).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		zap.L().Debug("api: DELETE failed", zap.String("path", path), zap.Error(err))
		return errors.Wrapf(err, "DELETE %s", path)
	}
	if code == http.StatusNotFound {
		// deleting an already-deleted row is treated as done
		return nil
	}
	return decode(code, body, nil)
}
