package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const pngSize = 300

// RenderPNG encodes the payload text as a QR code PNG. High error correction
// so a phone camera copes with a projected or printed code.
func RenderPNG(payload string) ([]byte, error) {
	png, err := qrcode.Encode(payload, qrcode.High, pngSize)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}
	return png, nil
}

// RenderDataURL returns the PNG as a data URL for direct embedding in an
// <img> tag.
func RenderDataURL(payload string) (string, error) {
	png, err := RenderPNG(payload)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
