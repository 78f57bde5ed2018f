// Package ocr extracts text from images through either the Google
// Cloud Vision API or Azure Computer Vision.
package ocr

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Service names as shown in the settings UI.
const (
	ServiceAzure  = "Azure Computer Vision"
	ServiceGoogle = "Google Cloud Vision"
)

// Services lists the selectable OCR backends.
var Services = []string{ServiceAzure, ServiceGoogle}

var (
	// ErrMissingAPIKey is returned when the configured backend has no
	// key.
	ErrMissingAPIKey = errors.New("OCR API key is not configured")

	// ErrMissingEndpoint is returned when Azure is selected without its
	// resource endpoint.
	ErrMissingEndpoint = errors.New("Azure endpoint is not configured")

	// ErrNoText is returned when the service found nothing to read.
	ErrNoText = errors.New("no text found in image")

	// ErrEmptyImage is returned for an empty image payload.
	ErrEmptyImage = errors.New("image is empty")
)

const requestTimeout = 30 * time.Second

// Client extracts text from one image.
type Client interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Config selects and configures an OCR backend.
type Config struct {
	Service       string
	APIKey        string
	AzureEndpoint string
}

// New returns the client for a configured service name. Unknown names
// fall back to Azure, matching the settings default.
func New(cfg Config) Client {
	switch cfg.Service {
	case ServiceGoogle:
		return NewGoogle(cfg.APIKey)
	default:
		return NewAzure(cfg.AzureEndpoint, cfg.APIKey)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
