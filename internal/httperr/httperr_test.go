package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", ErrValidation("missing_fields", "reason is required"), http.StatusBadRequest, "missing_fields"},
		{"unauthenticated", ErrUnauthenticated("invalid_credentials", ""), http.StatusUnauthorized, "invalid_credentials"},
		{"forbidden", ErrForbidden("forbidden", ""), http.StatusForbidden, "forbidden"},
		{"not found", ErrNotFound("appointment_not_found", ""), http.StatusNotFound, "appointment_not_found"},
		{"conflict", ErrConflict("email_already_registered", ""), http.StatusConflict, "email_already_registered"},
		{"unavailable", ErrUnavailable("storage_disabled", ""), http.StatusServiceUnavailable, "storage_disabled"},
		{"wrapped", fmt.Errorf("create: %w", ErrConflict("dup", "")), http.StatusConflict, "dup"},
		{"plain error", errors.New("connection reset"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Respond(c, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("error_code = %q, want %q", body.Code, tt.wantCode)
			}
			if body.Message == "" {
				t.Error("message should never be empty")
			}
		})
	}
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("wrap: %w", ErrValidation("invalid_date", ""))
	if !IsBusiness(err, "invalid_date") {
		t.Error("IsBusiness should see through wrapping")
	}
	if IsBusiness(err, "other") {
		t.Error("IsBusiness matched the wrong code")
	}
	if KindOf(errors.New("x")) != KindInternal {
		t.Error("plain errors are internal")
	}
}
