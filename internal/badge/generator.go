package badge

import (
	"errors"
	"strings"

	"github.com/skip2/go-qrcode"
)

const defaultSize = 256

// Generator renders attendee barcodes as QR PNGs so staff can reprint
// a scannable badge for attendees who lost theirs.
type Generator struct {
	size int
}

func NewGenerator() *Generator {
	return &Generator{size: defaultSize}
}

// BarcodePNG encodes a barcode into a PNG QR image.
func (g *Generator) BarcodePNG(barcode string) ([]byte, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, errors.New("barcode is empty")
	}
	return qrcode.Encode(barcode, qrcode.Medium, g.size)
}
