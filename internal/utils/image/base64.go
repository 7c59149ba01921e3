package image

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidImage = errors.New("invalid image payload")

var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// DecodeBase64 decodes a base64 data URI ("data:image/png;base64,....")
// into raw bytes plus its content type and file extension.
func DecodeBase64(data string) ([]byte, string, string, error) {
	contentType := "image/png"
	payload := data

	if strings.HasPrefix(data, "data:") {
		parts := strings.SplitN(data, ",", 2)
		if len(parts) != 2 {
			return nil, "", "", ErrInvalidImage
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		meta = strings.TrimSuffix(meta, ";base64")
		if meta != "" {
			contentType = meta
		}
		payload = parts[1]
	}

	ext, ok := extensions[contentType]
	if !ok {
		return nil, "", "", ErrInvalidImage
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", "", ErrInvalidImage
	}
	if len(raw) == 0 {
		return nil, "", "", ErrInvalidImage
	}

	return raw, contentType, ext, nil
}
