package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const gistAPIBase = "https://api.github.com"

// GistMirror uploads the pick log to a private GitHub Gist so the history
// survives environments that wipe the working directory between runs.
type GistMirror struct {
	token    string
	gistID   string
	fileName string
	client   *http.Client
}

// NewGistMirror creates a mirror for the given token. When gistID is empty
// the first upload creates a new gist and remembers its ID for the rest of
// the process lifetime.
func NewGistMirror(token, gistID, fileName string) *GistMirror {
	if fileName == "" {
		fileName = "accumulator_log.json"
	}
	return &GistMirror{
		token:    token,
		gistID:   gistID,
		fileName: fileName,
		client:   &http.Client{Timeout: 20 * time.Second},
	}
}

type gistPayload struct {
	Files       map[string]gistFile `json:"files"`
	Public      bool                `json:"public"`
	Description string              `json:"description"`
}

type gistFile struct {
	Content string `json:"content"`
}

type gistResponse struct {
	ID      string `json:"id"`
	HTMLURL string `json:"html_url"`
}

// Upload pushes the log content: PATCH when a gist ID is known, POST to
// create otherwise.
func (g *GistMirror) Upload(ctx context.Context, content string) error {
	if g.token == "" {
		return fmt.Errorf("gist token is required")
	}

	payload := gistPayload{
		Files:       map[string]gistFile{g.fileName: {Content: content}},
		Public:      false,
		Description: "Accumulator bot pick log",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal gist payload: %w", err)
	}

	method := http.MethodPost
	url := gistAPIBase + "/gists"
	if g.gistID != "" {
		method = http.MethodPatch
		url = fmt.Sprintf("%s/gists/%s", gistAPIBase, g.gistID)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create gist request: %w", err)
	}
	req.Header.Set("Authorization", "token "+g.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("gist request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("gist upload failed: status %d: %s", resp.StatusCode, data)
	}

	var out gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("failed to decode gist response: %w", err)
	}
	if g.gistID == "" {
		g.gistID = out.ID
	}
	slog.Info("Pick log mirrored to gist", "url", out.HTMLURL)
	return nil
}
