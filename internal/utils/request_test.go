package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LIBRARY_BACK-END/internal/dto"
)

type sample struct {
	Name  string `json:"name"`
	Pages int    `json:"pages"`
}

func TestDecodeJSONRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   bool
		wantField string
	}{
		{name: "valid", body: `{"name":"Dune","pages":412}`},
		{name: "empty", body: "", wantErr: true, wantField: "body"},
		{name: "malformed", body: `{"name":`, wantErr: true, wantField: "body"},
		{name: "wrong type", body: `{"pages":"many"}`, wantErr: true, wantField: "pages"},
		{name: "too large", body: `{"name":"` + strings.Repeat("a", maxRequestBodyBytes) + `"}`, wantErr: true, wantField: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst sample
			err := DecodeJSONRequest(rec, req, &dst)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, sample{Name: "Dune", Pages: 412}, dst)
				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var env dto.Envelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
			assert.False(t, env.Success)
			require.NotNil(t, env.Details)
			assert.Equal(t, tt.wantField, env.Details.Field)
		})
	}
}
