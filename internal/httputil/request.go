package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxBodySize caps JSON request bodies. Uploads go through multipart
// parsing with their own limit.
const maxBodySize = 10 << 20

// ParseJSON decodes JSON from the request body into the given
// destination, with the body size capped to prevent abuse. Unknown
// fields are tolerated; validation happens downstream in the services.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	return nil
}
