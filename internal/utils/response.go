package utils

import (
	"encoding/json"
	"net/http"

	"LIBRARY_BACK-END/internal/dto"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteSuccessResponse wraps data in a successful envelope
func WriteSuccessResponse(w http.ResponseWriter, status int, message string, data any) {
	WriteJSONResponse(w, status, dto.Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteErrorResponse writes a failed envelope; details may be nil
func WriteErrorResponse(w http.ResponseWriter, status int, message string, details *dto.ErrorDetails) {
	WriteJSONResponse(w, status, dto.Envelope{
		Success: false,
		Message: message,
		Details: details,
	})
}
