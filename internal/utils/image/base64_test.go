package image

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
)

func TestDecodeBase64(t *testing.T) {
	payload := []byte("raw image bytes")
	encoded := base64.StdEncoding.EncodeToString(payload)

	raw, contentType, ext, err := DecodeBase64("data:image/jpeg;base64," + encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bytes.Equal(raw, payload) {
		t.Fatal("decoded bytes differ from payload")
	}
	if contentType != "image/jpeg" || ext != "jpg" {
		t.Fatalf("unexpected meta: %s %s", contentType, ext)
	}

	// Bare base64 without a data URI header defaults to png.
	raw, contentType, ext, err = DecodeBase64(encoded)
	if err != nil {
		t.Fatalf("bare decode: %v", err)
	}
	if contentType != "image/png" || ext != "png" {
		t.Fatalf("unexpected default meta: %s %s", contentType, ext)
	}
	if !bytes.Equal(raw, payload) {
		t.Fatal("decoded bytes differ from payload")
	}
}

func TestDecodeBase64_Invalid(t *testing.T) {
	cases := []string{
		"data:image/png;base64",
		"data:application/zip;base64," + base64.StdEncoding.EncodeToString([]byte("x")),
		"data:image/png;base64,not-base64!!!",
		"data:image/png;base64," + base64.StdEncoding.EncodeToString(nil),
	}
	for _, input := range cases {
		if _, _, _, err := DecodeBase64(input); !errors.Is(err, ErrInvalidImage) {
			t.Fatalf("input %q: expected ErrInvalidImage, got %v", input, err)
		}
	}
}
