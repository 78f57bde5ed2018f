package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Azure reads text through the Computer Vision OCR API of a
// user-provisioned resource, which is why it needs an endpoint in
// addition to the key.
type Azure struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewAzure returns a Computer Vision client for the given resource
// endpoint, e.g. "https://myresource.cognitiveservices.azure.com".
func NewAzure(endpoint, apiKey string) *Azure {
	return &Azure{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client:   newHTTPClient(),
	}
}

// Name implements Client.
func (a *Azure) Name() string { return ServiceAzure }

// Recognize implements Client.
func (a *Azure) Recognize(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrEmptyImage
	}
	if a.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if a.endpoint == "" {
		return "", ErrMissingEndpoint
	}

	u := a.endpoint + "/vision/v3.2/ocr?language=unk&detectOrientation=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(image))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", a.apiKey)

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("OCR service returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var result struct {
		Regions []struct {
			Lines []struct {
				Words []struct {
					Text string `json:"text"`
				} `json:"words"`
			} `json:"lines"`
		} `json:"regions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("unable to decode OCR response: %w", err)
	}

	var lines []string
	for _, region := range result.Regions {
		for _, line := range region.Lines {
			words := make([]string, 0, len(line.Words))
			for _, w := range line.Words {
				words = append(words, w.Text)
			}
			if len(words) > 0 {
				lines = append(lines, strings.Join(words, " "))
			}
		}
	}
	if len(lines) == 0 {
		return "", ErrNoText
	}
	return strings.Join(lines, "\n"), nil
}
