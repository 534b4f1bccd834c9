package response

import (
	"encoding/json"
	"net/http"

	"github.com/roomverse/platform/internal/auth"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// WriteAuthError writes a structured denial: machine code, message, and
// timestamp. Internal errors carry no detail beyond the generic message.
func WriteAuthError(w http.ResponseWriter, err *auth.Error) {
	WriteJSON(w, err.Status, err)
}
