package util

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHandleError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", ErrAttemptNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("load: %w", ErrTestNotFound), http.StatusNotFound},
		{"invalid state", ErrNoAnswersSubmitted, http.StatusBadRequest},
		{"bad request", ErrAttemptMismatch, http.StatusBadRequest},
		{"validation", Invalid(errors.New("score out of range")), http.StatusBadRequest},
		{"forbidden", ErrPermissionDenied, http.StatusForbidden},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(c, tt.err)

			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			var resp Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != tt.want {
				t.Fatalf("envelope code = %d, want %d", resp.Code, tt.want)
			}
		})
	}
}
