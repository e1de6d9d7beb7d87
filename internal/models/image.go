package models

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const DefaultImageMIME = "image/jpeg"

// Image is a decoded still image.
type Image struct {
	MIMEType string
	Data     []byte
}

// ParseImage accepts a data URI ("data:image/png;base64,...") or bare
// base64, which is assumed to be JPEG.
func ParseImage(raw string) (*Image, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("image is empty")
	}

	mimeType := DefaultImageMIME
	payload := raw
	if strings.HasPrefix(raw, "data:") {
		header, data, ok := strings.Cut(raw, ",")
		if !ok {
			return nil, errors.New("data uri has no payload")
		}
		meta := strings.TrimPrefix(header, "data:")
		if !strings.HasSuffix(meta, ";base64") {
			return nil, errors.New("data uri is not base64 encoded")
		}
		meta = strings.TrimSuffix(meta, ";base64")
		if meta != "" {
			mimeType = meta
		}
		payload = data
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("unsupported mime type {%s}", mimeType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("image payload is empty")
	}
	return &Image{MIMEType: mimeType, Data: data}, nil
}

func (i *Image) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

func (i *Image) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", i.MIMEType, i.Base64())
}

// Extension is the file extension matching the MIME type, without a dot.
func (i *Image) Extension() string {
	switch i.MIMEType {
	case "image/jpeg", "image/jpg":
		return "jpg"
	default:
		return strings.TrimPrefix(i.MIMEType, "image/")
	}
}
