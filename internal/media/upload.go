package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// MaxUploadBytes matches the client-side event image limit.
const MaxUploadBytes = 2 << 20

var (
	ErrUploadTooLarge = errors.New("image too large")
	ErrNotAnImage     = errors.New("not an image")
)

// EncodeUpload reads an uploaded file and converts it to a data URI. The MIME
// type is sniffed from the content rather than trusted from the request, and
// anything that is not image/* or exceeds MaxUploadBytes is rejected.
func EncodeUpload(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) > MaxUploadBytes {
		return "", ErrUploadTooLarge
	}
	if len(data) == 0 {
		return "", ErrNotAnImage
	}

	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", ErrNotAnImage
	}

	return DataURL(mime, data), nil
}

func DataURL(mime string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}
