package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/time/rate"
)

const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// Google translates through the public web endpoint. No key is
// required; the trade-off is an undocumented response format and no
// service guarantees, which is why Microsoft stays the default.
type Google struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// NewGoogle returns a Google Translate client.
func NewGoogle() *Google {
	return &Google{
		endpoint: googleEndpoint,
		client:   newHTTPClient(),
		limiter:  newLimiter(),
	}
}

// Name implements Translator.
func (g *Google) Name() string { return ServiceGoogle }

// Translate implements Translator.
func (g *Google) Translate(ctx context.Context, text, targetCode string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}
	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	u := g.endpoint + "?" + url.Values{
		"client": {"gtx"},
		"sl":     {"auto"},
		"tl":     {targetCode},
		"dt":     {"t"},
		"q":      {text},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translation service returned %s: %s", resp.Status, strings.TrimSpace(string(snippet)))
	}

	return decodeGoogleResponse(resp.Body)
}

// decodeGoogleResponse extracts the translated text from the endpoint's
// nested-array format: the first element is a list of segments, each of
// which starts with its translated chunk.
func decodeGoogleResponse(r io.Reader) (string, error) {
	var payload []json.RawMessage
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return "", fmt.Errorf("unable to decode translation response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("translation response carried no text")
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected translation response shape: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if chunk, ok := seg[0].(string); ok {
			sb.WriteString(chunk)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("translation response carried no text")
	}
	return sb.String(), nil
}
