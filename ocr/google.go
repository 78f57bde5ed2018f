package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const googleEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// Google reads text through the Cloud Vision images:annotate API with
// document text detection, which handles dense multi-line pages better
// than plain text detection.
type Google struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewGoogle returns a Cloud Vision client.
func NewGoogle(apiKey string) *Google {
	return &Google{
		apiKey:   apiKey,
		endpoint: googleEndpoint,
		client:   newHTTPClient(),
	}
}

// Name implements Client.
func (g *Google) Name() string { return ServiceGoogle }

// Recognize implements Client.
func (g *Google) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrEmptyImage
	}
	if g.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	body, err := json.Marshal(map[string]any{
		"requests": []map[string]any{{
			"image":    map[string]string{"content": base64.StdEncoding.EncodeToString(image)},
			"features": []map[string]string{{"type": "DOCUMENT_TEXT_DETECTION"}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("unable to encode vision request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"?key="+g.apiKey, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("vision request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("vision service returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var result struct {
		Responses []struct {
			FullTextAnnotation struct {
				Text string `json:"text"`
			} `json:"fullTextAnnotation"`
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		} `json:"responses"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("unable to decode vision response: %w", err)
	}
	if len(result.Responses) == 0 {
		return "", ErrNoText
	}
	r := result.Responses[0]
	if r.Error.Message != "" {
		return "", fmt.Errorf("vision service error: %s", r.Error.Message)
	}
	text := strings.TrimSpace(r.FullTextAnnotation.Text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}
