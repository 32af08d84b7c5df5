package service

import (
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(tableLabel string) ([]byte, error)
}

// DefaultQRGenerator encodes a link that opens the ordering page with the
// table preselected.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(tableLabel string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/order?table=%s", g.BaseURL, url.QueryEscape(tableLabel))
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
