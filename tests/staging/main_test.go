//go:build staging

package staging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

// Seeded by `devtool seed` from configs/boxes.json
const (
	aliceID       = "0b6a3f3e-1c55-4c1e-9d0e-5a3b7e2c4001"
	bobID         = "0b6a3f3e-1c55-4c1e-9d0e-5a3b7e2c4002"
	starterBoxID  = "0b6a3f3e-1c55-4c1e-9d0e-5a3b7e2c1001"
	chaseBoxID    = "0b6a3f3e-1c55-4c1e-9d0e-5a3b7e2c1002"
	defaultAPIKey = "test-api-key"
)

var (
	stagingURL string
	client     *http.Client
)

func TestMain(m *testing.M) {
	// Get API URL from environment or default to localhost
	stagingURL = os.Getenv("API_URL")
	if stagingURL == "" {
		stagingURL = "http://localhost:8080"
	}

	client = &http.Client{
		Timeout: 10 * time.Second,
	}

	os.Exit(m.Run())
}

// makeRequest sends an authenticated request acting as userID (empty for anonymous)
func makeRequest(t *testing.T, method, path, userID string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	url := fmt.Sprintf("%s%s", stagingURL, path)
	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		apiKey = defaultAPIKey
	}
	req.Header.Set("X-API-Key", apiKey)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request to %s: %v", url, err)
	}

	respBody, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	return resp, respBody
}

func decode(t *testing.T, body []byte, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(body, target); err != nil {
		t.Fatalf("Failed to unmarshal response %q: %v", body, err)
	}
}
