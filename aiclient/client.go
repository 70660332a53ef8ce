package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/anashalam/music-app-backend/logger"
)

// Recommendation is a single suggestion returned by the recommendation
// service. The payload is passed through to clients untouched.
type Recommendation struct {
	SongID string  `json:"song_id"`
	Title  string  `json:"title"`
	Score  float64 `json:"score"`
}

// Client talks to the external recommendation service. Every call degrades
// gracefully: the catalog keeps working when the service is down.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Recommendations fetches suggestions for a user. Any transport or decode
// failure is logged and an empty list returned.
func (c *Client) Recommendations(ctx context.Context, userID string) []Recommendation {
	url := fmt.Sprintf("%s/recommend/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return []Recommendation{}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn(logger.EventGeneral, "recommendation service unreachable", logger.Fields("error", err.Error()))
		return []Recommendation{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Warn(logger.EventGeneral, "recommendation service error", logger.Fields("status", resp.StatusCode))
		return []Recommendation{}
	}

	var recs []Recommendation
	if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
		logger.Warn(logger.EventGeneral, "recommendation payload malformed", logger.Fields("error", err.Error()))
		return []Recommendation{}
	}
	if recs == nil {
		recs = []Recommendation{}
	}
	return recs
}

// Track forwards a listening event for model training. Failures are logged
// and swallowed so tracking never affects playback.
func (c *Client) Track(ctx context.Context, userID, songID, action string) {
	body, err := json.Marshal(map[string]string{
		"user_id": userID,
		"song_id": songID,
		"action":  action,
	})
	if err != nil {
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/track", bytes.NewReader(body))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn(logger.EventTrackingFailure, "tracking request failed", logger.Fields("error", err.Error()))
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		logger.Warn(logger.EventTrackingFailure, "tracking request rejected", logger.Fields("status", resp.StatusCode))
	}
}
