package tts

import "testing"

func TestVoicesForFallsBackToEnglish(t *testing.T) {
	set := VoicesFor("No Such Model", Language(99))
	if len(set) != 2 {
		t.Fatalf("fallback set has %d voices, want 2", len(set))
	}
	if set[0].Language != English {
		t.Errorf("fallback set language = %v, want English", set[0].Language)
	}
	// The fallback orders the female voice first.
	if set[0].Name != "Aria" || set[1].Name != "Zira" {
		t.Errorf("fallback order = %s, %s, want Aria, Zira", set[0].Name, set[1].Name)
	}
}

func TestDefaultVoiceIsFemale(t *testing.T) {
	for _, lang := range Languages {
		v := DefaultVoice(ModelEdge, lang)
		if v.Gender != "Female" {
			t.Errorf("%v default voice = %+v, want female", lang, v)
		}
		if !VoiceInSet(ModelEdge, lang, v.ID) {
			t.Errorf("%v default voice %s not in its own set", lang, v.ID)
		}
	}
}

func TestVoiceLabelAndTag(t *testing.T) {
	v := Voice{ID: "en-US-AriaNeural", Name: "Aria", Language: English, Gender: "Female"}
	if got := v.Label(); got != "Female (Aria)" {
		t.Errorf("Label() = %q", got)
	}
	if got := v.Tag(); got != "aria" {
		t.Errorf("Tag() = %q", got)
	}
}

func TestOutputFilename(t *testing.T) {
	tests := []struct {
		lang  Language
		voice Voice
		want  string
	}{
		{English, DefaultVoice(ModelEdge, English), "eng_output_edgearia.mp3"},
		{Russian, FirstVoice(ModelEdge, Russian), "ru_output_edgedmitry.mp3"},
		{Ukrainian, DefaultVoice(ModelEdge, Ukrainian), "ua_output_edgepolina.mp3"},
		{Japanese, DefaultVoice(ModelEdge, Japanese), "jp_output_edgenanami.mp3"},
	}
	for _, tt := range tests {
		if got := OutputFilename(ModelEdge, tt.lang, tt.voice); got != tt.want {
			t.Errorf("OutputFilename(%v) = %q, want %q", tt.lang, got, tt.want)
		}
	}
}

func TestBatchFilename(t *testing.T) {
	got := BatchFilename(3, ModelEdge, Russian, "report.docx")
	want := "batch_3_ru_edge_report.mp3"
	if got != want {
		t.Errorf("BatchFilename = %q, want %q", got, want)
	}
}
