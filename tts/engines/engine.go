// Package engines defines the synthesis backend contract and the audio
// formats a backend can be asked to produce.
package engines

import (
	"context"
	"errors"
)

// Output formats understood by the Edge backend. MP3 is used for saved
// artifacts; PCM is requested when the built-in player will consume the
// audio directly.
const (
	FormatMP3 = "audio-24khz-48kbitrate-mono-mp3"
	FormatPCM = "raw-24khz-16bit-mono-pcm"
)

// PCM stream parameters matching FormatPCM.
const (
	PCMSampleRate = 24000
	PCMChannels   = 1
)

var (
	// ErrEmptyText is returned when a request carries no text.
	ErrEmptyText = errors.New("synthesis text is empty")

	// ErrNoAudio is returned when the backend completed a turn without
	// producing any audio payload.
	ErrNoAudio = errors.New("backend returned no audio")
)

// Request describes one synthesis call. Rate, Volume and Pitch are the
// already-validated signed strings the backend accepts ("+10%", "+0%",
// "-5Hz"); callers build them through tts.VoiceSettings.
type Request struct {
	Text   string
	Voice  string // backend voice identifier
	Rate   string
	Volume string
	Pitch  string
	Format string // one of the Format constants; empty means FormatMP3
}

// Engine converts one text payload into encoded audio. Implementations
// must be safe for sequential reuse; concurrent calls are not required.
type Engine interface {
	// Name identifies the backend in logs and diagnostics.
	Name() string

	// Synthesize produces encoded audio for the request. The context
	// bounds network activity only; there is no mid-flight cancellation
	// contract beyond it.
	Synthesize(ctx context.Context, req Request) ([]byte, error)
}
