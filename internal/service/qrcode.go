package service

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DefaultQRGenerator renders the guest ordering link for a session token as a
// PNG. BaseURL points at the customer-facing frontend.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g *DefaultQRGenerator) Generate(token string) ([]byte, error) {
	url := fmt.Sprintf("%s/menu?session=%s", g.BaseURL, token)
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}
	return png, nil
}

var _ QRGenerator = (*DefaultQRGenerator)(nil)
