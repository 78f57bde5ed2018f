// Package audio provides playback for synthesized speech. Playback
// walks an ordered list of strategies, stopping at the first one that
// succeeds: the built-in PCM player for raw audio, then external
// player commands appropriate for the platform.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/ogi-dev/ogitts/tts/engines"
)

// ErrAllStrategiesFailed is returned when every playback strategy in
// the chain raised an error.
var ErrAllStrategiesFailed = errors.New("all playback strategies failed")

// Strategy is one way of playing an audio file.
type Strategy struct {
	Name string
	Play func(ctx context.Context, path string) error
}

// Chain returns the ordered playback strategies for the current
// platform and audio format. Raw PCM prefers the built-in player;
// encoded audio goes straight to external players.
func Chain(format string) []Strategy {
	var chain []Strategy

	if format == engines.FormatPCM {
		chain = append(chain, Strategy{Name: "builtin", Play: playPCMFile})
	}

	switch runtime.GOOS {
	case "darwin":
		chain = append(chain, command("afplay", "afplay"))
	case "windows":
		chain = append(chain,
			Strategy{Name: "powershell_media", Play: playPowershell},
			Strategy{Name: "cmd_start", Play: playCmdStart},
		)
	default:
		if format == engines.FormatPCM {
			chain = append(chain, Strategy{Name: "aplay_raw", Play: playAplayRaw})
		}
		chain = append(chain,
			command("mpv", "mpv", "--no-video", "--really-quiet"),
			command("ffplay", "ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"),
			command("paplay", "paplay"),
		)
	}

	return chain
}

// PlayFile walks the strategy chain for path. It returns the name of
// the strategy that succeeded, or ErrAllStrategiesFailed wrapping
// nothing; individual failures are logged, not returned.
func PlayFile(ctx context.Context, path string, chain []Strategy) (string, error) {
	for _, s := range chain {
		if err := s.Play(ctx, path); err != nil {
			log.Debug("playback strategy failed", "strategy", s.Name, "err", err)
			continue
		}
		return s.Name, nil
	}
	return "", ErrAllStrategiesFailed
}

func command(name string, bin string, args ...string) Strategy {
	return Strategy{
		Name: name,
		Play: func(ctx context.Context, path string) error {
			if _, err := exec.LookPath(bin); err != nil {
				return fmt.Errorf("%s not available: %w", bin, err)
			}
			cmd := exec.CommandContext(ctx, bin, append(args, path)...) //nolint:gosec
			if err := cmd.Run(); err != nil {
				return fmt.Errorf("%s failed: %w", bin, err)
			}
			return nil
		},
	}
}

func playAplayRaw(ctx context.Context, path string) error {
	if _, err := exec.LookPath("aplay"); err != nil {
		return fmt.Errorf("aplay not available: %w", err)
	}
	cmd := exec.CommandContext(ctx, "aplay", "-q",
		"-f", "S16_LE",
		"-r", strconv.Itoa(engines.PCMSampleRate),
		"-c", strconv.Itoa(engines.PCMChannels),
		path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("aplay failed: %w", err)
	}
	return nil
}

func playPowershell(ctx context.Context, path string) error {
	if _, err := exec.LookPath("powershell"); err != nil {
		return fmt.Errorf("powershell not available: %w", err)
	}
	script := fmt.Sprintf(
		`$p = New-Object System.Media.SoundPlayer %q; $p.PlaySync()`, path)
	cmd := exec.CommandContext(ctx, "powershell", "-NoProfile", "-Command", script)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("powershell playback failed: %w", err)
	}
	return nil
}

func playCmdStart(ctx context.Context, path string) error {
	cmd := exec.CommandContext(ctx, "cmd", "/c", "start", "", path)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cmd start failed: %w", err)
	}
	return nil
}
