package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantID   int64
		wantSet  bool
	}{
		{name: "valid id", header: "42", wantID: 42, wantSet: true},
		{name: "missing header", header: "", wantSet: false},
		{name: "non-numeric", header: "abc", wantSet: false},
		{name: "zero id", header: "0", wantSet: false},
		{name: "negative id", header: "-5", wantSet: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			var gotSet bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, gotSet = GetUserID(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			Auth(next).ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantSet, gotSet)
			if tt.wantSet {
				assert.Equal(t, tt.wantID, gotID)
			}
		})
	}
}
