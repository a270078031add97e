package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every API response. Exactly one of Data and Error
// is meaningful, selected by Success.
type Envelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data,omitempty"`
	Error   *string `json:"error"`
}

// dataEnvelope always carries the data key, as null when there is nothing to return.
type dataEnvelope struct {
	Success bool    `json:"success"`
	Data    any     `json:"data"`
	Error   *string `json:"error"`
}

func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func Success(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Success: true, Data: data})
}

func Failure(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Error: &message})
}

// FailureWithNullData is Failure for routes whose error body keeps "data": null.
func FailureWithNullData(w http.ResponseWriter, status int, message string) {
	JSON(w, status, dataEnvelope{Success: false, Error: &message})
}
