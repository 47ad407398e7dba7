package payway

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"strconv"
	"strings"
)

// hashFields returns the values covered by the checkout signature in the
// order the gateway expects. The order is a wire contract: changing it
// breaks signature verification on the gateway side. Fields this
// integration does not send (items, shipping, customer details, URLs)
// contribute an empty string, not "null" or "0".
func hashFields(p *checkoutPayload) []string {
	return []string{
		p.ReqTime,
		p.MerchantID,
		p.TranID,
		p.Amount,
		"", // items
		"", // shipping
		"", // firstname
		"", // lastname
		"", // email
		"", // phone
		"", // type
		p.PaymentOption,
		"", // return_url
		"", // cancel_url
		"", // continue_success_url
		"", // return_deeplink
		p.Currency,
		"", // custom_fields
		"", // return_params
		"", // payout
		strconv.Itoa(p.Lifetime),
		"", // additional_params
		"", // google_pay_token
		"", // skip_success_page
		p.QRImageTemplate,
	}
}

// sign concatenates the hash fields with no delimiters and returns the
// base64-encoded HMAC-SHA512 digest under the merchant API key.
func sign(key string, p *checkoutPayload) string {
	mac := hmac.New(sha512.New, []byte(key))
	mac.Write([]byte(strings.Join(hashFields(p), "")))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
