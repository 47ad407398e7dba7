package payway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload() *checkoutPayload {
	return &checkoutPayload{
		ReqTime:         "20250101120000",
		MerchantID:      "ec000001",
		TranID:          "TX01011200001a2b",
		Amount:          "10.5",
		PaymentOption:   "abapay_khqr",
		Currency:        "USD",
		Lifetime:        6,
		QRImageTemplate: "template4_color",
	}
}

func TestHashFieldOrder(t *testing.T) {
	fields := hashFields(testPayload())

	require.Len(t, fields, 25)

	// Populated fields sit at their fixed positions
	assert.Equal(t, "20250101120000", fields[0])
	assert.Equal(t, "ec000001", fields[1])
	assert.Equal(t, "TX01011200001a2b", fields[2])
	assert.Equal(t, "10.5", fields[3])
	assert.Equal(t, "abapay_khqr", fields[11])
	assert.Equal(t, "USD", fields[16])
	assert.Equal(t, "6", fields[20])
	assert.Equal(t, "template4_color", fields[24])

	// Everything else contributes an empty string
	for i, f := range fields {
		switch i {
		case 0, 1, 2, 3, 11, 16, 20, 24:
		default:
			assert.Emptyf(t, f, "field %d should be an empty placeholder", i)
		}
	}

	// Direct concatenation, no delimiters
	want := "20250101120000" + "ec000001" + "TX01011200001a2b" + "10.5" +
		"abapay_khqr" + "USD" + "6" + "template4_color"
	assert.Equal(t, want, strings.Join(fields, ""))
}

func TestSignMatchesHMACSHA512(t *testing.T) {
	p := testPayload()
	const key = "test-api-key"

	mac := hmac.New(sha512.New, []byte(key))
	mac.Write([]byte(strings.Join(hashFields(p), "")))
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, sign(key, p))
}

func TestSignStableForIdenticalInput(t *testing.T) {
	a := sign("key", testPayload())
	b := sign("key", testPayload())
	assert.Equal(t, a, b)
}

func TestSignDependsOnKeyAndFields(t *testing.T) {
	p := testPayload()
	base := sign("key", p)

	assert.NotEqual(t, base, sign("other-key", p))

	changed := testPayload()
	changed.Amount = "10.51"
	assert.NotEqual(t, base, sign("key", changed))
}
