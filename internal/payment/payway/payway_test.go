package payway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"go-payway/internal/config"
	"go-payway/internal/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGatewayServer records every request and plays back a canned response
type fakeGatewayServer struct {
	mu    sync.Mutex
	paths []string
	forms []url.Values

	status      int
	contentType string
	body        string
}

func (f *fakeGatewayServer) handler(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	f.mu.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.forms = append(f.forms, r.PostForm)
	f.mu.Unlock()

	if f.contentType != "" {
		w.Header().Set("Content-Type", f.contentType)
	}
	if f.status != 0 {
		w.WriteHeader(f.status)
	}
	_, _ = w.Write([]byte(f.body))
}

func newTestGateway(t *testing.T, fake *fakeGatewayServer) (*PaywayGateway, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(fake.handler))
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		PaywayMerchantID:  "ec000001",
		PaywayAPIKey:      "test-api-key",
		PaywayQRAPIURL:    srv.URL + "/qr",
		PaywayCardsAPIURL: srv.URL + "/cards",
	}
	return New(cfg), srv
}

func checkoutRequest(option string) payment.CheckoutRequest {
	return payment.CheckoutRequest{
		Amount:        decimal.NewFromFloat(10.5),
		PaymentOption: option,
		Description:   "coffee order #42",
	}
}

func TestCreateCheckoutSelectsEndpointByOption(t *testing.T) {
	fake := &fakeGatewayServer{contentType: "application/json", body: `{"status":0}`}
	g, _ := newTestGateway(t, fake)

	_, err := g.CreateCheckout(context.Background(), checkoutRequest("abapay_khqr"))
	require.NoError(t, err)
	_, err = g.CreateCheckout(context.Background(), checkoutRequest("cards"))
	require.NoError(t, err)

	require.Len(t, fake.paths, 2)
	assert.Equal(t, "/qr", fake.paths[0])
	assert.Equal(t, "/cards", fake.paths[1])
}

func TestCreateCheckoutWirePayload(t *testing.T) {
	fake := &fakeGatewayServer{contentType: "application/json", body: `{"status":0}`}
	g, _ := newTestGateway(t, fake)

	result, err := g.CreateCheckout(context.Background(), checkoutRequest("abapay_khqr"))
	require.NoError(t, err)

	require.Len(t, fake.forms, 1)
	form := fake.forms[0]

	assert.Equal(t, "ec000001", form.Get("merchant_id"))
	assert.Equal(t, "10.5", form.Get("amount"))
	assert.Equal(t, "USD", form.Get("currency"))
	assert.Equal(t, "abapay_khqr", form.Get("payment_option"))
	assert.Equal(t, "6", form.Get("lifetime"))
	assert.Equal(t, "template4_color", form.Get("qr_image_template"))
	assert.Regexp(t, `^\d{14}$`, form.Get("req_time"))
	assert.Equal(t, result.TransactionID, form.Get("tran_id"))

	// The description is collected but never crosses the wire
	assert.False(t, form.Has("description"))

	// The transmitted hash covers the canonical field order
	canonical := form.Get("req_time") + form.Get("merchant_id") + form.Get("tran_id") +
		"10.5" + "abapay_khqr" + "USD" + "6" + "template4_color"
	mac := hmac.New(sha512.New, []byte("test-api-key"))
	mac.Write([]byte(canonical))
	assert.Equal(t, base64.StdEncoding.EncodeToString(mac.Sum(nil)), form.Get("hash"))
}

func TestCreateCheckoutClassifiesHTMLAsRedirect(t *testing.T) {
	const page = "<html><body>checkout</body></html>"
	fake := &fakeGatewayServer{contentType: "text/html; charset=utf-8", body: page}
	g, _ := newTestGateway(t, fake)

	result, err := g.CreateCheckout(context.Background(), checkoutRequest("cards"))
	require.NoError(t, err)

	assert.Equal(t, payment.ResultRedirect, result.Kind)
	assert.Equal(t, page, result.HTML)
	assert.Equal(t, http.StatusOK, result.HTTPStatus)
	assert.Equal(t, "text/html; charset=utf-8", result.ContentType)
	assert.NotEmpty(t, result.TransactionID)
}

func TestCreateCheckoutClassifiesJSONAsDirect(t *testing.T) {
	const body = `{"qr_string":"00020101","amount":10.5}`
	fake := &fakeGatewayServer{contentType: "application/json", body: body}
	g, _ := newTestGateway(t, fake)

	result, err := g.CreateCheckout(context.Background(), checkoutRequest("abapay_khqr"))
	require.NoError(t, err)

	assert.Equal(t, payment.ResultDirect, result.Kind)
	assert.JSONEq(t, body, string(result.Data))
	assert.NotEmpty(t, result.TransactionID)
}

func TestCreateCheckoutClassifiesGatewayFailure(t *testing.T) {
	fake := &fakeGatewayServer{
		status:      http.StatusBadRequest,
		contentType: "application/json",
		body:        `{"status":11,"message":"invalid hash"}`,
	}
	g, _ := newTestGateway(t, fake)

	result, err := g.CreateCheckout(context.Background(), checkoutRequest("abapay_khqr"))
	require.NoError(t, err)

	assert.Equal(t, payment.ResultGatewayError, result.Kind)
	assert.Equal(t, http.StatusBadRequest, result.HTTPStatus)
	assert.Equal(t, `{"status":11,"message":"invalid hash"}`, result.RawBody)
}

func TestCreateCheckoutUnparsableJSONIsContractError(t *testing.T) {
	fake := &fakeGatewayServer{contentType: "application/json", body: "<oops>"}
	g, _ := newTestGateway(t, fake)

	_, err := g.CreateCheckout(context.Background(), checkoutRequest("abapay_khqr"))

	var contractErr *payment.ContractError
	require.ErrorAs(t, err, &contractErr)
	assert.Equal(t, "<oops>", contractErr.Body)
	assert.Equal(t, http.StatusOK, contractErr.HTTPStatus)
}

func TestCreateCheckoutMissingCredentials(t *testing.T) {
	fake := &fakeGatewayServer{contentType: "application/json", body: `{}`}
	g, _ := newTestGateway(t, fake)
	g.cfg.PaywayAPIKey = ""

	_, err := g.CreateCheckout(context.Background(), checkoutRequest("abapay_khqr"))

	assert.ErrorIs(t, err, payment.ErrNotConfigured)
	assert.Empty(t, fake.paths, "no request should be made without credentials")
}

func TestCreateCheckoutNetworkError(t *testing.T) {
	fake := &fakeGatewayServer{}
	g, srv := newTestGateway(t, fake)
	srv.Close()

	_, err := g.CreateCheckout(context.Background(), checkoutRequest("abapay_khqr"))

	var netErr *payment.NetworkError
	assert.ErrorAs(t, err, &netErr)
	assert.False(t, errors.Is(err, payment.ErrNotConfigured))
}

func TestOptionsIncludeCards(t *testing.T) {
	g := New(&config.Config{PaywayMerchantID: "m", PaywayAPIKey: "k"})

	var codes []string
	for _, o := range g.Options() {
		codes = append(codes, o.Code)
	}
	assert.Contains(t, codes, "cards")
	assert.Contains(t, codes, "abapay_khqr")
}
