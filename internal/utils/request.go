package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"LIBRARY_BACK-END/internal/dto"
)

const maxRequestBodyBytes = 1 << 20

// DecodeJSONRequest decodes the request body into dst.
// On failure it writes a 400 response and returns the error, so callers only return.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)
	details := &dto.ErrorDetails{Field: "body", Error: err.Error()}
	switch {
	case errors.Is(err, io.EOF):
		details.Error = "request body is empty"
	case errors.As(err, &syntaxErr):
		details.Error = fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		details.Field = typeErr.Field
		details.Error = fmt.Sprintf("must be of type %s", typeErr.Type)
	case errors.As(err, &maxErr):
		details.Error = fmt.Sprintf("request body must not exceed %d bytes", maxErr.Limit)
	}

	WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", details)
	return err
}
