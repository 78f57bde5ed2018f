package tts

import (
	"fmt"
	"math"
)

// Voice settings domains. UI inputs are clamped into these before the
// values ever reach a synthesis backend.
const (
	MinSpeed  = 0.5
	MaxSpeed  = 2.0
	MinVolume = 0
	MaxVolume = 100
	MinPitch  = -50
	MaxPitch  = 50
)

// VoiceSettings holds the per-session prosody configuration applied to
// every synthesis request.
type VoiceSettings struct {
	Speed  float64 // multiplier, 0.5x to 2.0x
	Volume int     // percent, 0 to 100
	Pitch  int     // hertz offset, -50 to +50
}

// DefaultVoiceSettings returns the neutral configuration.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{Speed: 1.0, Volume: 100, Pitch: 0}
}

// Clamp returns a copy with every field forced into its domain.
func (s VoiceSettings) Clamp() VoiceSettings {
	s.Speed = math.Min(math.Max(s.Speed, MinSpeed), MaxSpeed)
	s.Volume = clampInt(s.Volume, MinVolume, MaxVolume)
	s.Pitch = clampInt(s.Pitch, MinPitch, MaxPitch)
	return s
}

// Rate converts the speed multiplier into the signed percentage string
// the Edge backend accepts: clamp(round((s-1)*100), -100, 100).
func (s VoiceSettings) Rate() string {
	rate := clampInt(int(math.Round((s.Speed-1)*100)), -100, 100)
	return fmt.Sprintf("%+d%%", rate)
}

// VolumeParam converts the volume percentage into the signed adjustment
// string the Edge backend accepts. A volume of 100 means "no
// adjustment" and emits the explicit neutral marker.
func (s VoiceSettings) VolumeParam() string {
	if s.Volume == 100 {
		return "+0%"
	}
	return fmt.Sprintf("%+d%%", clampInt(s.Volume-100, -100, 100))
}

// PitchParam converts the pitch offset into the signed hertz string the
// Edge backend accepts.
func (s VoiceSettings) PitchParam() string {
	return fmt.Sprintf("%+dHz", clampInt(s.Pitch, -50, 50))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
