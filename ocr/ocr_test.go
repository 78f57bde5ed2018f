package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

var fakeImage = []byte("\x89PNG fake image bytes")

func TestGoogleRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("key"); got != "vision-key" {
			t.Errorf("key = %q", got)
		}
		var body struct {
			Requests []struct {
				Image    struct{ Content string }
				Features []struct{ Type string }
			}
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		if len(body.Requests) != 1 || body.Requests[0].Features[0].Type != "DOCUMENT_TEXT_DETECTION" {
			t.Errorf("unexpected request body: %+v", body)
		}
		decoded, err := base64.StdEncoding.DecodeString(body.Requests[0].Image.Content)
		if err != nil || string(decoded) != string(fakeImage) {
			t.Error("image payload not base64 of the original bytes")
		}
		if _, err := w.Write([]byte(`{"responses":[{"fullTextAnnotation":{"text":"Page one text\nsecond line\n"}}]}`)); err != nil {
			t.Error(err)
		}
	}))
	defer srv.Close()

	g := NewGoogle("vision-key")
	g.endpoint = srv.URL

	got, err := g.Recognize(context.Background(), fakeImage)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Page one text\nsecond line" {
		t.Errorf("Recognize = %q", got)
	}
}

func TestGoogleNoText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(`{"responses":[{}]}`)); err != nil {
			t.Error(err)
		}
	}))
	defer srv.Close()

	g := NewGoogle("vision-key")
	g.endpoint = srv.URL
	if _, err := g.Recognize(context.Background(), fakeImage); !errors.Is(err, ErrNoText) {
		t.Errorf("err = %v, want ErrNoText", err)
	}
}

func TestAzureRecognize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/vision/v3.2/ocr") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Ocp-Apim-Subscription-Key"); got != "azure-key" {
			t.Errorf("subscription key = %q", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil || string(body) != string(fakeImage) {
			t.Error("image not sent as raw octet stream")
		}
		if _, err := w.Write([]byte(`{"regions":[{"lines":[
			{"words":[{"text":"Hello"},{"text":"world"}]},
			{"words":[{"text":"second"},{"text":"line"}]}
		]}]}`)); err != nil {
			t.Error(err)
		}
	}))
	defer srv.Close()

	a := NewAzure(srv.URL, "azure-key")

	got, err := a.Recognize(context.Background(), fakeImage)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello world\nsecond line" {
		t.Errorf("Recognize = %q", got)
	}
}

func TestAzureConfigErrors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		a := NewAzure("https://example.cognitiveservices.azure.com", "")
		if _, err := a.Recognize(context.Background(), fakeImage); !errors.Is(err, ErrMissingAPIKey) {
			t.Errorf("err = %v, want ErrMissingAPIKey", err)
		}
	})

	t.Run("missing endpoint", func(t *testing.T) {
		a := NewAzure("", "azure-key")
		if _, err := a.Recognize(context.Background(), fakeImage); !errors.Is(err, ErrMissingEndpoint) {
			t.Errorf("err = %v, want ErrMissingEndpoint", err)
		}
	})

	t.Run("empty image", func(t *testing.T) {
		a := NewAzure("https://example.com", "azure-key")
		if _, err := a.Recognize(context.Background(), nil); !errors.Is(err, ErrEmptyImage) {
			t.Errorf("err = %v, want ErrEmptyImage", err)
		}
	})
}

func TestNewSelectsService(t *testing.T) {
	if got := New(Config{Service: ServiceGoogle, APIKey: "k"}).Name(); got != ServiceGoogle {
		t.Errorf("New(google) = %q", got)
	}
	if got := New(Config{Service: "Unknown"}).Name(); got != ServiceAzure {
		t.Errorf("unknown service must fall back to Azure, got %q", got)
	}
}
