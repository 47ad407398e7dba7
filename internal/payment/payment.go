package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// ErrNotConfigured indicates the merchant id or signing key is missing
var ErrNotConfigured = errors.New("payment gateway credentials not configured")

// NetworkError wraps a transport-level failure reaching the gateway
// (timeout, DNS, connection refused). Such failures are not retried.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "payment gateway unreachable: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ContractError indicates the gateway responded with a success status
// that promised JSON but the body did not parse. This is a gateway
// contract violation and surfaces as a distinct error, never as a
// silent empty payload.
type ContractError struct {
	HTTPStatus  int
	ContentType string
	Body        string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("gateway returned unparsable body (status %d, content type %q)", e.HTTPStatus, e.ContentType)
}

// CheckoutRequest holds validated data for creating a checkout
type CheckoutRequest struct {
	Amount        decimal.Decimal
	PaymentOption string
	Description   string
}

// ResultKind is the terminal classification of a gateway response
type ResultKind int

const (
	ResultRedirect     ResultKind = iota // HTML checkout page to render
	ResultDirect                         // JSON payment payload
	ResultGatewayError                   // non-2xx gateway status
)

// CheckoutResult is the classified outcome of one gateway call
type CheckoutResult struct {
	Kind          ResultKind
	TransactionID string
	HTTPStatus    int
	ContentType   string
	Headers       http.Header
	HTML          string          // ResultRedirect
	Data          json.RawMessage // ResultDirect, gateway body verbatim
	RawBody       string          // ResultGatewayError
}

// Option represents a payment method the gateway accepts
type Option struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Type string `json:"type"` // "qr" or "redirect"
}

// Gateway defines the interface for payment providers
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error)
	Options() []Option
}
