package lib

import (
	"net/http"
	"strings"
)

var authSchemes = []string{"Token", "Bearer"}

// ExtractTokenKey reads the key from an "Authorization: Token <key>" or
// "Authorization: Bearer <key>" header. It returns "" when no usable header is present.
func ExtractTokenKey(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	scheme, key, found := strings.Cut(header, " ")
	if !found {
		return ""
	}
	for _, s := range authSchemes {
		if strings.EqualFold(scheme, s) {
			return strings.TrimSpace(key)
		}
	}
	return ""
}
