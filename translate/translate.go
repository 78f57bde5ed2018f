// Package translate provides text translation through either the
// Microsoft Translator API or the public Google endpoint. Both clients
// share a request timeout and a client-side rate limit so a pasted
// document cannot hammer the services.
package translate

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Service names as shown in the settings UI.
const (
	ServiceMicrosoft = "Microsoft Translator"
	ServiceGoogle    = "Google Translate"
)

// Services lists the selectable translation backends.
var Services = []string{ServiceMicrosoft, ServiceGoogle}

var (
	// ErrEmptyText is returned when there is nothing to translate.
	ErrEmptyText = errors.New("no text to translate")

	// ErrMissingAPIKey is returned by backends that require a key when
	// none is configured.
	ErrMissingAPIKey = errors.New("translator API key is not configured")
)

const (
	requestTimeout = 10 * time.Second

	// One request per second with a small burst keeps both services
	// comfortable.
	requestsPerSecond = 1
	requestBurst      = 3
)

// Translator converts text into a target language identified by its
// ISO 639-1 code.
type Translator interface {
	Name() string
	Translate(ctx context.Context, text, targetCode string) (string, error)
}

// New returns the translator for a configured service name. Unknown
// names fall back to Microsoft, matching the settings default.
func New(service, apiKey string) Translator {
	switch service {
	case ServiceGoogle:
		return NewGoogle()
	default:
		return NewMicrosoft(apiKey)
	}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

func newLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst)
}
