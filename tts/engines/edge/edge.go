// Package edge implements the engines.Engine contract on top of the
// Microsoft Edge read-aloud websocket service, the same backend the
// edge-tts tooling uses. No API key is required; the service
// authenticates through a fixed trusted client token.
package edge

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ogi-dev/ogitts/tts/engines"
)

const (
	wssURL       = "wss://speech.platform.bing.com/consumer/speech/synthesize/readaloud/edge/v1"
	trustedToken = "6A5AA1D4EAFF4E9FB37E23D68491D6F4"

	// The service drops idle connections quickly; one connection per
	// request keeps the lifecycle simple.
	handshakeTimeout = 15 * time.Second
	defaultDeadline  = 5 * time.Minute
)

// Engine synthesizes speech through the Edge read-aloud service.
type Engine struct {
	dialer *websocket.Dialer
}

// New returns an Edge engine with default dial settings.
func New() *Engine {
	return &Engine{
		dialer: &websocket.Dialer{HandshakeTimeout: handshakeTimeout},
	}
}

// Name implements engines.Engine.
func (e *Engine) Name() string { return "edge" }

// Synthesize opens one websocket turn: speech.config, then the SSML
// payload, then collects binary audio frames until turn.end.
func (e *Engine) Synthesize(ctx context.Context, req engines.Request) ([]byte, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, engines.ErrEmptyText
	}
	format := req.Format
	if format == "" {
		format = engines.FormatMP3
	}

	connID := strings.ReplaceAll(uuid.NewString(), "-", "")
	url := fmt.Sprintf("%s?TrustedClientToken=%s&ConnectionId=%s", wssURL, trustedToken, connID)

	conn, resp, err := e.dialer.DialContext(ctx, url, nil)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("edge dial failed (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("edge dial failed: %w", err)
	}
	defer conn.Close() //nolint:errcheck

	deadline := time.Now().Add(defaultDeadline)
	if d, ok := ctx.Deadline(); ok {
		deadline = d
	}
	_ = conn.SetReadDeadline(deadline)
	_ = conn.SetWriteDeadline(deadline)

	if err := conn.WriteMessage(websocket.TextMessage, speechConfig(format)); err != nil {
		return nil, fmt.Errorf("edge speech.config write failed: %w", err)
	}

	requestID := strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := conn.WriteMessage(websocket.TextMessage, ssmlMessage(requestID, req)); err != nil {
		return nil, fmt.Errorf("edge ssml write failed: %w", err)
	}

	var audio bytes.Buffer
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("edge read failed: %w", err)
		}

		switch msgType {
		case websocket.TextMessage:
			if strings.Contains(string(data), "Path:turn.end") {
				if audio.Len() == 0 {
					return nil, engines.ErrNoAudio
				}
				log.Debug("edge synthesis complete", "bytes", audio.Len(), "format", format)
				return audio.Bytes(), nil
			}
		case websocket.BinaryMessage:
			payload, ok := audioPayload(data)
			if ok {
				audio.Write(payload)
			}
		}
	}
}

// audioPayload strips the binary frame header. The first two bytes are
// the big-endian header length; audio bytes follow frames whose header
// carries Path:audio.
func audioPayload(frame []byte) ([]byte, bool) {
	if len(frame) < 2 {
		return nil, false
	}
	headerLen := int(binary.BigEndian.Uint16(frame[:2]))
	if len(frame) < 2+headerLen {
		return nil, false
	}
	header := frame[2 : 2+headerLen]
	if !bytes.Contains(header, []byte("Path:audio")) {
		return nil, false
	}
	return frame[2+headerLen:], true
}

func speechConfig(format string) []byte {
	body := fmt.Sprintf(
		`{"context":{"synthesis":{"audio":{"metadataoptions":{"sentenceBoundaryEnabled":"false","wordBoundaryEnabled":"false"},"outputFormat":%q}}}}`,
		format,
	)
	return []byte("X-Timestamp:" + timestamp() + "\r\n" +
		"Content-Type:application/json; charset=utf-8\r\n" +
		"Path:speech.config\r\n\r\n" + body)
}

func ssmlMessage(requestID string, req engines.Request) []byte {
	ssml := fmt.Sprintf(
		`<speak version='1.0' xmlns='http://www.w3.org/2001/10/synthesis' xml:lang='en-US'>`+
			`<voice name='%s'><prosody pitch='%s' rate='%s' volume='%s'>%s</prosody></voice></speak>`,
		req.Voice, req.Pitch, req.Rate, req.Volume, escapeText(req.Text),
	)
	return []byte("X-RequestId:" + requestID + "\r\n" +
		"Content-Type:application/ssml+xml\r\n" +
		"X-Timestamp:" + timestamp() + "\r\n" +
		"Path:ssml\r\n\r\n" + ssml)
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func timestamp() string {
	return time.Now().UTC().Format("Mon Jan 02 2006 15:04:05 GMT+0000 (Coordinated Universal Time)")
}
