package webutil

import (
	"encoding/json"
	"net/http"
)

const maxRequestBodyBytes = 1 << 20 // 1 MiB

// RespondJSON writes payload as a JSON response with the given status code.
// Marshal failures degrade to a plain 500 so the client always receives
// valid JSON.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// RespondError writes a JSON error body with the given status code.
func RespondError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = http.StatusText(status)
	}
	RespondJSON(w, status, map[string]string{"error": message})
}

// DecodeJSON parses the request body into v, capping the body size to keep
// oversized payloads from exhausting memory.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
