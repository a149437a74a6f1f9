package qrcode

import qr "github.com/skip2/go-qrcode"

const defaultSize = 256

// Generate creates a QR code PNG image for the given join URL.
func Generate(url string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultSize
	}
	return qr.Encode(url, qr.Medium, size)
}
