// Package mock provides a scriptable synthesis backend for tests.
package mock

import (
	"context"
	"sync"

	"github.com/ogi-dev/ogitts/tts/engines"
)

// Engine implements engines.Engine with scripted results. The zero
// value succeeds every call with a small fake payload.
type Engine struct {
	mu sync.Mutex

	// Script holds per-call errors keyed by call index (0-based). Calls
	// without an entry succeed.
	Script map[int]error

	// Payload is the audio returned on success. Defaults to a short
	// non-empty byte slice so size checks pass.
	Payload []byte

	calls []engines.Request
}

// New returns a mock engine that succeeds every call.
func New() *Engine {
	return &Engine{Payload: []byte("RIFFmock-audio-payload")}
}

// Name implements engines.Engine.
func (e *Engine) Name() string { return "mock" }

// Synthesize records the request and returns the scripted result.
func (e *Engine) Synthesize(_ context.Context, req engines.Request) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := len(e.calls)
	e.calls = append(e.calls, req)

	if err, ok := e.Script[idx]; ok && err != nil {
		return nil, err
	}
	if len(e.Payload) == 0 {
		return []byte("RIFFmock-audio-payload"), nil
	}
	return e.Payload, nil
}

// Calls returns a copy of every request seen so far.
func (e *Engine) Calls() []engines.Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]engines.Request, len(e.calls))
	copy(out, e.calls)
	return out
}

// CallCount returns the number of Synthesize calls so far.
func (e *Engine) CallCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.calls)
}
