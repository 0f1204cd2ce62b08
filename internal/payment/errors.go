package payment

import (
	"context"
	"net"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// GatewayError is a non-2xx gateway response with whatever structured cause
// the gateway attached. Response shapes vary between endpoints and failure
// kinds, so the raw body is decoded loosely and translated to one display
// string.
type GatewayError struct {
	StatusCode int
	Message    string
	Causes     []GatewayCause
}

type GatewayCause struct {
	Code        string `mapstructure:"code"`
	Description string `mapstructure:"description"`
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Causes) > 0 && e.Causes[0].Description != "" {
		return e.Causes[0].Description
	}
	return "gateway error"
}

type gatewayErrorBody struct {
	Message string                   `mapstructure:"message"`
	Error   string                   `mapstructure:"error"`
	Cause   []map[string]interface{} `mapstructure:"cause"`
}

func newGatewayError(code int, body []byte) *GatewayError {
	ge := &GatewayError{StatusCode: code}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return ge
	}
	var decoded gatewayErrorBody
	if err := mapstructure.Decode(raw, &decoded); err != nil {
		return ge
	}
	ge.Message = decoded.Message
	if ge.Message == "" {
		ge.Message = decoded.Error
	}
	for _, c := range decoded.Cause {
		var cause GatewayCause
		if err := mapstructure.Decode(c, &cause); err == nil {
			ge.Causes = append(ge.Causes, cause)
		}
	}
	return ge
}

// Display messages for the failure classes the gateway produces.
const (
	msgGatewayInternal = "Erro interno no servidor de pagamento. Por favor, tente novamente mais tarde."
	msgTimeout         = "Tempo de conexão esgotado. Verifique sua internet e tente novamente."
	msgGeneric         = "Erro ao processar o pagamento."
)

// Translate turns any payment error into the single human-readable string
// the interface shows. Specific causes win over the generic fallback.
func Translate(err error) string {
	if err == nil {
		return ""
	}

	var ge *GatewayError
	if errors.As(err, &ge) {
		if ge.StatusCode >= 500 {
			return msgGatewayInternal
		}
		if ge.Message != "" {
			return ge.Message
		}
		if len(ge.Causes) > 0 && ge.Causes[0].Description != "" {
			return ge.Causes[0].Description
		}
		return msgGeneric
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return msgTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return msgTimeout
	}

	return msgGeneric
}
