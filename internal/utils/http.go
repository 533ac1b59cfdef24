package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorBody is the JSON body of every non-2xx API response.
type ErrorBody struct {
	Error      string   `json:"error"`
	Kind       string   `json:"kind,omitempty"`
	Stage      string   `json:"stage,omitempty"`
	FeatureIDs []string `json:"feature_ids,omitempty"`
}

// WriteJSON serializes data to JSON and writes it with statusCode. If
// marshaling fails it responds with 500 and returns the wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteError writes an [ErrorBody] with message and kind.
func WriteError(w http.ResponseWriter, statusCode int, message, kind string) {
	_, _ = WriteJSON(w, ErrorBody{Error: message, Kind: kind}, statusCode)
}
