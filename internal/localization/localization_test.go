package localization

import "testing"

func TestPick(t *testing.T) {
	if got := Pick(NameRussian); got.TabSettings != "Настройки" {
		t.Errorf("russian TabSettings = %q", got.TabSettings)
	}
	if got := Pick(NameUkrainian); got.TabSettings != "Налаштування" {
		t.Errorf("ukrainian TabSettings = %q", got.TabSettings)
	}
	if got := Pick("Deutsch"); got.Name != NameEnglish {
		t.Errorf("unknown name must resolve to English, got %q", got.Name)
	}
	if got := Pick(""); got.Name != NameEnglish {
		t.Errorf("empty name must resolve to English, got %q", got.Name)
	}
}

func TestFromEnvironment(t *testing.T) {
	tests := []struct {
		lang string
		want string
	}{
		{"uk_UA.UTF-8", NameUkrainian},
		{"ru_RU", NameRussian},
		{"en_US.UTF-8", NameEnglish},
		{"fr_FR", NameEnglish},
		{"", NameEnglish},
		{"garbage!!", NameEnglish},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			t.Setenv("LANGUAGE", "")
			t.Setenv("LC_ALL", "")
			t.Setenv("LANG", tt.lang)
			if got := FromEnvironment(); got.Name != tt.want {
				t.Errorf("FromEnvironment() with LANG=%q = %q, want %q", tt.lang, got.Name, tt.want)
			}
		})
	}
}
