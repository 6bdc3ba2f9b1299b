package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"missing authorization header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic test-token", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"token with trailing garbage", "Bearer test-token-x", http.StatusUnauthorized},
		{"valid token", "Bearer test-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mockBoardPort{}
			app := newTestApp(t, mock)

			req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusUnauthorized {
				var body ErrorResponse
				defer resp.Body.Close()
				if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body.Error != "Unauthorized" {
					t.Errorf("error = %q, want %q", body.Error, "Unauthorized")
				}
				if mock.calls != 0 {
					t.Errorf("calls = %d, unauthorized request must not reach the board", mock.calls)
				}
			}
		})
	}
}

// Every method of the programmatic surface rejects a bad token before
// touching the board.
func TestBearerAuth_AllMethods(t *testing.T) {
	methods := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodPatch, "/tasks?id=t1"},
		{http.MethodDelete, "/tasks?id=t1"},
	}

	for _, tt := range methods {
		t.Run(tt.method, func(t *testing.T) {
			mock := &mockBoardPort{}
			app := newTestApp(t, mock)

			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set("Authorization", "Bearer wrong")
			resp, err := app.Test(req, -1)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
			if mock.calls != 0 {
				t.Errorf("calls = %d, want 0", mock.calls)
			}
		})
	}
}
