// Package payreq decodes bolt11 payment requests and builds the invoice
// values handed back to clients.
package payreq

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/getAlby/lnpaywall/lnd"
	"github.com/lightningnetwork/lnd/zpay32"
)

var ErrDecode = errors.New("invalid payment request")

type Invoice struct {
	PaymentRequest string    `json:"payment_request"`
	PaymentHash    string    `json:"payment_hash"`
	Memo           string    `json:"memo"`
	ValueSatoshis  int64     `json:"value"`
	ExpiresAt      time.Time `json:"expires_at"`
}

// Normalize strips the lightning: URI scheme and surrounding whitespace.
func Normalize(request string) string {
	request = strings.ToLower(strings.TrimSpace(request))
	return strings.TrimPrefix(request, "lightning:")
}

// DecodePaymentHash returns the hex payment hash committed to by request.
// Anything that is not a well formed, correctly signed bolt11 string fails
// with ErrDecode.
func DecodePaymentHash(request string) (string, error) {
	request = Normalize(request)
	if len(request) < 4 || !strings.HasPrefix(request, "ln") {
		return "", ErrDecode
	}
	decoded, err := zpay32.Decode(request, ChainFromCurrency(request[2:]))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if decoded.PaymentHash == nil {
		return "", fmt.Errorf("%w: missing payment hash", ErrDecode)
	}
	return hex.EncodeToString(decoded.PaymentHash[:]), nil
}

func ChainFromCurrency(currency string) *chaincfg.Params {
	if strings.HasPrefix(currency, "bcrt") {
		return &chaincfg.RegressionNetParams
	} else if strings.HasPrefix(currency, "tb") {
		return &chaincfg.TestNet3Params
	} else if strings.HasPrefix(currency, "sb") {
		return &chaincfg.SimNetParams
	} else {
		return &chaincfg.MainNetParams
	}
}

func FromRaw(raw lnd.RawInvoice, paymentHash string) Invoice {
	return Invoice{
		PaymentRequest: raw.PaymentRequest,
		PaymentHash:    paymentHash,
		Memo:           raw.Memo,
		ValueSatoshis:  raw.Value,
		ExpiresAt:      raw.CreatedAt.Add(time.Duration(raw.Expiry) * time.Second),
	}
}
