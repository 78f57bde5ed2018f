package tts

import "testing"

func TestVoiceSettingsClamp(t *testing.T) {
	tests := []struct {
		name string
		in   VoiceSettings
		want VoiceSettings
	}{
		{"neutral", VoiceSettings{1.0, 100, 0}, VoiceSettings{1.0, 100, 0}},
		{"speed too low", VoiceSettings{0.1, 50, 10}, VoiceSettings{0.5, 50, 10}},
		{"speed too high", VoiceSettings{5.0, 50, 10}, VoiceSettings{2.0, 50, 10}},
		{"volume negative", VoiceSettings{1.0, -20, 0}, VoiceSettings{1.0, 0, 0}},
		{"volume over", VoiceSettings{1.0, 250, 0}, VoiceSettings{1.0, 100, 0}},
		{"pitch low", VoiceSettings{1.0, 100, -200}, VoiceSettings{1.0, 100, -50}},
		{"pitch high", VoiceSettings{1.0, 100, 90}, VoiceSettings{1.0, 100, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestVoiceSettingsParams(t *testing.T) {
	tests := []struct {
		name   string
		in     VoiceSettings
		rate   string
		volume string
		pitch  string
	}{
		{"neutral", VoiceSettings{1.0, 100, 0}, "+0%", "+0%", "+0Hz"},
		{"fast loud high", VoiceSettings{1.5, 100, 20}, "+50%", "+0%", "+20Hz"},
		{"slow quiet low", VoiceSettings{0.5, 40, -30}, "-50%", "-60%", "-30Hz"},
		{"double speed", VoiceSettings{2.0, 0, 50}, "+100%", "-100%", "+50Hz"},
		{"rounding", VoiceSettings{1.257, 100, 0}, "+26%", "+0%", "+0Hz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Rate(); got != tt.rate {
				t.Errorf("Rate() = %q, want %q", got, tt.rate)
			}
			if got := tt.in.VolumeParam(); got != tt.volume {
				t.Errorf("VolumeParam() = %q, want %q", got, tt.volume)
			}
			if got := tt.in.PitchParam(); got != tt.pitch {
				t.Errorf("PitchParam() = %q, want %q", got, tt.pitch)
			}
		})
	}
}
