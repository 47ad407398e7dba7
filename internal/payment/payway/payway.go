package payway

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go-payway/internal/config"
	"go-payway/internal/payment"

	"github.com/go-resty/resty/v2"
)

// Fixed checkout parameters of this integration
const (
	currency        = "USD"
	lifetimeMinutes = 6
	qrImageTemplate = "template4_color"
	requestTimeout  = 30 * time.Second
)

// cardsOption is the payment option that selects the card-linking
// endpoint; every other option goes to QR generation.
const cardsOption = "cards"

// PaywayGateway implements payment.Gateway against the PayWay checkout API
type PaywayGateway struct {
	cfg    *config.Config
	client *resty.Client
}

func New(cfg *config.Config) *PaywayGateway {
	client := resty.New().SetTimeout(requestTimeout)
	if cfg.PaywaySkipTLSVerify {
		// Explicit sandbox opt-in, verification is on by default
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	return &PaywayGateway{cfg: cfg, client: client}
}

// checkoutPayload is the complete signed outbound payload. It is built
// once per request and never mutated after the hash is attached.
type checkoutPayload struct {
	ReqTime         string // UTC, YYYYMMDDHHMMSS
	MerchantID      string
	TranID          string
	Amount          string
	PaymentOption   string
	Description     string // kept on the payload, never sent to the gateway
	Currency        string
	Lifetime        int
	QRImageTemplate string
	Hash            string
}

// buildPayload assembles a signed checkout payload. The hash is computed
// last because it covers every prior field.
func (g *PaywayGateway) buildPayload(req payment.CheckoutRequest) (*checkoutPayload, error) {
	if g.cfg.PaywayMerchantID == "" || g.cfg.PaywayAPIKey == "" {
		return nil, payment.ErrNotConfigured
	}
	p := &checkoutPayload{
		ReqTime:         time.Now().UTC().Format("20060102150405"),
		MerchantID:      g.cfg.PaywayMerchantID,
		TranID:          NewTranID(),
		Amount:          req.Amount.String(),
		PaymentOption:   req.PaymentOption,
		Description:     req.Description,
		Currency:        currency,
		Lifetime:        lifetimeMinutes,
		QRImageTemplate: qrImageTemplate,
	}
	p.Hash = sign(g.cfg.PaywayAPIKey, p)
	return p, nil
}

func (g *PaywayGateway) endpointFor(option string) string {
	if option == cardsOption {
		return g.cfg.PaywayCardsAPIURL
	}
	return g.cfg.PaywayQRAPIURL
}

// CreateCheckout builds the signed payload, posts it to the selected
// endpoint and classifies the response. Transport failures return a
// NetworkError and are not retried.
func (g *PaywayGateway) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutResult, error) {
	p, err := g.buildPayload(req)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.R().
		SetContext(ctx).
		// Whitelisted wire fields only, the description stays local
		SetFormData(map[string]string{
			"req_time":          p.ReqTime,
			"merchant_id":       p.MerchantID,
			"tran_id":           p.TranID,
			"amount":            p.Amount,
			"currency":          p.Currency,
			"payment_option":    p.PaymentOption,
			"lifetime":          strconv.Itoa(p.Lifetime),
			"qr_image_template": p.QRImageTemplate,
			"hash":              p.Hash,
		}).
		Post(g.endpointFor(p.PaymentOption))
	if err != nil {
		return nil, &payment.NetworkError{Err: err}
	}

	return classify(p.TranID, resp)
}

// classify maps the gateway response onto a terminal result kind,
// evaluated in order: non-2xx status, then HTML content, then JSON.
// The content-type check is a substring match because the gateway
// appends charset parameters.
func classify(tranID string, resp *resty.Response) (*payment.CheckoutResult, error) {
	contentType := resp.Header().Get("Content-Type")
	body := resp.Body()

	result := &payment.CheckoutResult{
		TransactionID: tranID,
		HTTPStatus:    resp.StatusCode(),
		ContentType:   contentType,
		Headers:       resp.Header(),
	}

	switch {
	case !resp.IsSuccess():
		result.Kind = payment.ResultGatewayError
		result.RawBody = string(body)
	case strings.Contains(contentType, "text/html"):
		result.Kind = payment.ResultRedirect
		result.HTML = string(body)
	default:
		if !json.Valid(body) {
			return nil, &payment.ContractError{
				HTTPStatus:  resp.StatusCode(),
				ContentType: contentType,
				Body:        string(body),
			}
		}
		result.Kind = payment.ResultDirect
		result.Data = json.RawMessage(append([]byte(nil), body...))
	}
	return result, nil
}

// Options returns the payment methods this integration accepts
func (g *PaywayGateway) Options() []payment.Option {
	return []payment.Option{
		{Code: "abapay_khqr", Name: "ABA KHQR", Type: "qr"},
		{Code: "abapay", Name: "ABA Pay", Type: "qr"},
		{Code: "wechat", Name: "WeChat Pay", Type: "qr"},
		{Code: "alipay", Name: "Alipay", Type: "qr"},
		{Code: cardsOption, Name: "Credit/Debit Card", Type: "redirect"},
	}
}
