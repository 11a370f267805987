package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIPrefix is the path prefix of every JSON endpoint.
const APIPrefix = "/api/"

// WriteJSON encodes data and writes it with statusCode. It returns the
// number of body bytes written.
//
// Encoding happens before any header is sent, so a value that cannot be
// encoded turns into a plain 500 instead of a half-written body.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	header := w.Header()
	header.Set("Content-Type", "application/json")
	header.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	return w.Write(body)
}

// IsAPIRequest reports whether r targets a JSON endpoint, either by path
// or because it was authenticated with an API token header.
func IsAPIRequest(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, APIPrefix) || r.Header.Get("Authorization") != ""
}
