package handlers

import (
	"encoding/json"
	"net/http"

	"portfolioAPI/internal/apierror"
)

// writeError renders err as {"status", "message"} with the matching code.
func writeError(w http.ResponseWriter, err error) {
	apiErr := apierror.Wrap(err, "internal error")
	writeSuccess(w, apiErr, apiErr.Status)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
