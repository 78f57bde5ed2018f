package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ogi-dev/ogitts/tts/engines"
)

// The oto context can only be created once per process, so it is
// initialized lazily and shared by every playback.
var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
)

func otoContext() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   engines.PCMSampleRate,
			ChannelCount: engines.PCMChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			otoErr = fmt.Errorf("audio context init failed: %w", err)
			return
		}
		<-ready
		otoCtx = ctx
	})
	return otoCtx, otoErr
}

// playPCMFile plays a raw 24 kHz signed 16-bit mono file through the
// built-in oto player, blocking until playback finishes or the context
// is cancelled.
func playPCMFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("unable to read audio file: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("audio file %s is empty", path)
	}

	octx, err := otoContext()
	if err != nil {
		return err
	}

	player := octx.NewPlayer(bytes.NewReader(data))
	defer player.Close() //nolint:errcheck
	player.Play()

	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
	return nil
}
