//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

// TestPlayerFlow walks a fresh account through the core loop: profile,
// inventory, starting a gathering task, and browsing a shop.
func TestPlayerFlow(t *testing.T) {
	token := registerAccount(t)

	t.Run("Profile", func(t *testing.T) {
		resp, body := makeRequest(t, http.MethodGet, "/api/v1/profile", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("profile returned %d: %s", resp.StatusCode, body)
		}

		var profile struct {
			Gold       int    `json:"gold"`
			RankLetter string `json:"rank_letter"`
			RankLevel  int    `json:"rank_level"`
		}
		if err := json.Unmarshal(body, &profile); err != nil {
			t.Fatalf("failed to decode profile: %v", err)
		}
		if profile.Gold != 100 {
			t.Errorf("expected starting gold of 100, got %d", profile.Gold)
		}
		if profile.RankLetter != "F" || profile.RankLevel != 1 {
			t.Errorf("expected rank F1, got %s%d", profile.RankLetter, profile.RankLevel)
		}
	})

	t.Run("EmptyInventory", func(t *testing.T) {
		resp, body := makeRequest(t, http.MethodGet, "/api/v1/inventory", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("inventory returned %d: %s", resp.StatusCode, body)
		}
	})

	t.Run("StartGather", func(t *testing.T) {
		resp, body := makeRequest(t, http.MethodPost, "/api/v1/tasks/gather", token, map[string]string{
			"category": "wood",
		})
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("start gather returned %d: %s", resp.StatusCode, body)
		}

		// A second start of the same type must be rejected
		resp, _ = makeRequest(t, http.MethodPost, "/api/v1/tasks/gather", token, map[string]string{
			"category": "wood",
		})
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("expected 409 on double start, got %d", resp.StatusCode)
		}

		// Claiming before the timer elapses must be rejected
		resp, _ = makeRequest(t, http.MethodPost, "/api/v1/tasks/gather/claim", token, nil)
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("expected 409 on early claim, got %d", resp.StatusCode)
		}

		resp, body = makeRequest(t, http.MethodGet, "/api/v1/tasks", token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("list tasks returned %d: %s", resp.StatusCode, body)
		}
		var tasks []map[string]interface{}
		if err := json.Unmarshal(body, &tasks); err != nil {
			t.Fatalf("failed to decode tasks: %v", err)
		}
		if len(tasks) != 1 {
			t.Errorf("expected 1 active task, got %d", len(tasks))
		}
	})

	t.Run("ShopStock", func(t *testing.T) {
		resp, body := makeRequest(t, http.MethodGet, "/api/v1/shops/1/stock", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("stock returned %d: %s", resp.StatusCode, body)
		}
		var stock []map[string]interface{}
		if err := json.Unmarshal(body, &stock); err != nil {
			t.Fatalf("failed to decode stock: %v", err)
		}
		if len(stock) == 0 {
			t.Error("expected non-empty stock")
		}
	})
}
