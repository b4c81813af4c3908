package lib

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes v as the bare JSON body of a successful response.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
