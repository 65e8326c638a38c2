package utils

import (
	"encoding/base64"
	"net/http"
)

// ResolveMIME picks the MIME type for an upload: the explicit value when
// given, otherwise sniffed from the leading bytes.
func ResolveMIME(explicit string, data []byte) string {
	if explicit != "" {
		return explicit
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	return http.DetectContentType(data)
}

// MakeDataURL encodes file bytes as a data: URL with the given MIME type
func MakeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
