package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const microsoftEndpoint = "https://api.cognitive.microsofttranslator.com/translate"

// Microsoft translates through the Azure Translator REST API. It
// requires a subscription key; the source language is always
// auto-detected by the service.
type Microsoft struct {
	apiKey   string
	region   string
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewMicrosoft returns a Microsoft Translator client using the global
// endpoint.
func NewMicrosoft(apiKey string) *Microsoft {
	return &Microsoft{
		apiKey:   apiKey,
		region:   "global",
		endpoint: microsoftEndpoint,
		client:   newHTTPClient(),
		limiter:  newLimiter(),
	}
}

// Name implements Translator.
func (m *Microsoft) Name() string { return ServiceMicrosoft }

// Translate implements Translator.
func (m *Microsoft) Translate(ctx context.Context, text, targetCode string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if m.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if err := m.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal([]map[string]string{{"Text": text}})
	if err != nil {
		return "", fmt.Errorf("unable to encode translation request: %w", err)
	}

	u := m.endpoint + "?" + url.Values{
		"api-version": {"3.0"},
		"to":          {targetCode},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", m.apiKey)
	req.Header.Set("Ocp-Apim-Subscription-Region", m.region)
	req.Header.Set("X-ClientTraceId", uuid.NewString())

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translation service returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	var result []struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("unable to decode translation response: %w", err)
	}
	if len(result) == 0 || len(result[0].Translations) == 0 {
		return "", fmt.Errorf("translation response carried no text")
	}
	return result[0].Translations[0].Text, nil
}
