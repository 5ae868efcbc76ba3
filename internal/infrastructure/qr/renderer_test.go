package qr

import (
	"bytes"
	"strings"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(`{"token":"abc123","subjectId":"SUB001"}`)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatal("output is not a PNG")
	}
}

func TestRenderDataURL(t *testing.T) {
	url, err := RenderDataURL("hello")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("unexpected prefix: %q", url[:30])
	}
}
