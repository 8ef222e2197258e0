package rest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name           string
		authorization  string
		clientID       string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Missing both headers",
			expectedStatus: fiber.StatusUnauthorized,
			expectedError:  "Missing or invalid authorization header",
		},
		{
			name:           "Missing bearer prefix",
			authorization:  testSecret,
			clientID:       testClientID,
			expectedStatus: fiber.StatusUnauthorized,
			expectedError:  "Missing or invalid authorization header",
		},
		{
			name:           "Missing client id header",
			authorization:  "Bearer " + testSecret,
			expectedStatus: fiber.StatusUnauthorized,
			expectedError:  "Missing X-Client-ID header",
		},
		{
			name:           "Unknown client id",
			authorization:  "Bearer " + testSecret,
			clientID:       "ghost",
			expectedStatus: fiber.StatusUnauthorized,
			expectedError:  "Invalid API key or client ID",
		},
		{
			name:           "Wrong token",
			authorization:  "Bearer wrong",
			clientID:       testClientID,
			expectedStatus: fiber.StatusUnauthorized,
			expectedError:  "Invalid API key or client ID",
		},
		{
			name:           "Valid credentials",
			authorization:  "Bearer " + testSecret,
			clientID:       testClientID,
			expectedStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, calls, closeUpstream := newMockUpstream(t, nil)
			defer closeUpstream()

			app := setupProxyTestApp(newTestConfig(), client)

			req := httptest.NewRequest("GET", "/api/health", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			if tt.clientID != "" {
				req.Header.Set("X-Client-ID", tt.clientID)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to perform request: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}

			if tt.expectedError != "" {
				var response ErrorResponse
				body, _ := io.ReadAll(resp.Body)
				if err := json.Unmarshal(body, &response); err != nil {
					t.Fatalf("Failed to unmarshal response: %v", err)
				}
				if response.Error != tt.expectedError {
					t.Errorf("Expected error '%s', got '%s'", tt.expectedError, response.Error)
				}
			}

			total := calls.SMS.Load() + calls.Voice.Load() + calls.WhatsApp.Load() + calls.Balance.Load() + calls.Pricing.Load()
			if total != 0 {
				t.Errorf("Expected no upstream calls, got %d", total)
			}
		})
	}
}

func TestOriginAccess(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		origin         string
		expectedStatus int
	}{
		{
			name:           "Empty allow-list passes any origin",
			allowedOrigins: nil,
			origin:         "https://evil.example",
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "Empty allow-list passes no origin",
			allowedOrigins: nil,
			origin:         "",
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "Listed origin passes",
			allowedOrigins: []string{"https://app.example.com"},
			origin:         "https://app.example.com",
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "Unlisted origin blocked",
			allowedOrigins: []string{"https://app.example.com"},
			origin:         "https://evil.example",
			expectedStatus: fiber.StatusForbidden,
		},
		{
			name:           "No origin header passes non-empty list",
			allowedOrigins: []string{"https://app.example.com"},
			origin:         "",
			expectedStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, closeUpstream := newMockUpstream(t, nil)
			defer closeUpstream()

			cfg := newTestConfig()
			cfg.AllowedOrigins = tt.allowedOrigins

			app := setupProxyTestApp(cfg, client)

			req := authedRequest("GET", "/api/health", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to perform request: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}
		})
	}
}

func TestIPAccess(t *testing.T) {
	tests := []struct {
		name           string
		allowedIPs     []string
		forwardedFor   string
		realIP         string
		expectedStatus int
	}{
		{
			name:           "Empty allow-list passes",
			allowedIPs:     nil,
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "Listed forwarded IP passes",
			allowedIPs:     []string{"203.0.113.7"},
			forwardedFor:   "203.0.113.7, 10.0.0.1",
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "Unlisted IP blocked despite valid auth",
			allowedIPs:     []string{"203.0.113.7"},
			forwardedFor:   "198.51.100.9",
			expectedStatus: fiber.StatusForbidden,
		},
		{
			name:           "IPv4-mapped IPv6 prefix stripped",
			allowedIPs:     []string{"203.0.113.7"},
			forwardedFor:   "::ffff:203.0.113.7",
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "X-Real-IP honored when no forwarded header",
			allowedIPs:     []string{"203.0.113.7"},
			realIP:         "203.0.113.7",
			expectedStatus: fiber.StatusOK,
		},
		{
			name:           "Socket address blocked when not listed",
			allowedIPs:     []string{"203.0.113.7"},
			expectedStatus: fiber.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, closeUpstream := newMockUpstream(t, nil)
			defer closeUpstream()

			cfg := newTestConfig()
			cfg.AllowedIPs = tt.allowedIPs

			app := setupProxyTestApp(cfg, client)

			req := authedRequest("GET", "/api/health", nil)
			if tt.forwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.forwardedFor)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("Failed to perform request: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, resp.StatusCode)
			}
		})
	}
}

func TestUnmatchedAPIRoute(t *testing.T) {
	client, _, closeUpstream := newMockUpstream(t, nil)
	defer closeUpstream()

	app := setupProxyTestApp(newTestConfig(), client)

	// No auth headers: the catch-all answers before the pipeline runs.
	req := httptest.NewRequest("GET", "/api/does-not-exist", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("Expected status 404, got %d", resp.StatusCode)
	}

	var response ErrorResponse
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.Success {
		t.Error("Expected success false")
	}
	if response.Error != "API endpoint not found" {
		t.Errorf("Unexpected error: %s", response.Error)
	}
}

func TestPipelineOrder(t *testing.T) {
	// A request failing both the IP filter and auth gets the IP rejection:
	// the network checks run before authentication.
	client, _, closeUpstream := newMockUpstream(t, nil)
	defer closeUpstream()

	cfg := newTestConfig()
	cfg.AllowedIPs = []string{"203.0.113.7"}

	app := setupProxyTestApp(cfg, client)

	req := httptest.NewRequest("GET", "/api/health", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.9")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403 from IP check, got %d", resp.StatusCode)
	}
}
