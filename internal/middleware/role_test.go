package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       interface{}
		allowed    []string
		wantStatus int
	}{
		{"customer allowed", "CUSTOMER", []string{"CUSTOMER", "ADMIN"}, http.StatusOK},
		{"admin allowed", "ADMIN", []string{"ADMIN"}, http.StatusOK},
		{"customer blocked from admin", "CUSTOMER", []string{"ADMIN"}, http.StatusForbidden},
		{"missing role", nil, []string{"CUSTOMER"}, http.StatusForbidden},
		{"non-string role", 42, []string{"CUSTOMER"}, http.StatusForbidden},
		{"unknown role", "MANAGER", []string{"CUSTOMER", "ADMIN"}, http.StatusForbidden},
	}

	e := echo.New()
	ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != nil {
				c.Set("role", tt.role)
			}
			h := RequireRole(tt.allowed...)(ok)
			if err := h(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
