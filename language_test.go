package mdtranslate

import (
	"errors"
	"testing"
)

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		wantCode  string
		wantDeepL string
		wantAzure string
		wantErr   error
	}{
		{"plain code", "fr", "fr", "FR", "fr", nil},
		{"uppercase input", "FR", "fr", "FR", "fr", nil},
		{"whitespace trimmed", " en ", "en", "EN-GB", "en-GB", nil},
		{"deepl alias", "en-gb", "en", "EN-GB", "en-GB", nil},
		{"chinese simplified mapping", "zh", "zh", "ZH", "zh-Hans", nil},
		{"unknown language", "tlh", "", "", "", ErrUnknownLanguage},
		{"empty code", "", "", "", "", ErrUnknownLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTarget(tt.code)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveTarget(%q) error = %v, want %v", tt.code, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveTarget(%q) error = %v", tt.code, err)
			}
			if got.Code != tt.wantCode || got.DeepL != tt.wantDeepL || got.Azure != tt.wantAzure {
				t.Errorf("ResolveTarget(%q) = {%s %s %s}, want {%s %s %s}",
					tt.code, got.Code, got.DeepL, got.Azure, tt.wantCode, tt.wantDeepL, tt.wantAzure)
			}
		})
	}
}

func TestResolveTargetsDeduplicates(t *testing.T) {
	targets, err := ResolveTargets([]string{"fr", "FR", "ar", "fr"})
	if err != nil {
		t.Fatalf("ResolveTargets() error = %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("ResolveTargets() returned %d targets, want 2", len(targets))
	}
	if targets[0].Code != "fr" || targets[1].Code != "ar" {
		t.Errorf("ResolveTargets() order = [%s %s], want [fr ar]", targets[0].Code, targets[1].Code)
	}
}

func TestResolveTargetsFailsFast(t *testing.T) {
	_, err := ResolveTargets([]string{"fr", "xx", "ar"})
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Errorf("ResolveTargets() error = %v, want %v", err, ErrUnknownLanguage)
	}
}

func TestLanguageDirection(t *testing.T) {
	ar, err := ResolveTarget("ar")
	if err != nil {
		t.Fatalf("ResolveTarget(ar) error = %v", err)
	}
	if !ar.IsRTL() {
		t.Error("Arabic should be right-to-left")
	}
	if ar.Font != arabicFont {
		t.Errorf("Arabic font = %q, want %q", ar.Font, arabicFont)
	}

	fr, err := ResolveTarget("fr")
	if err != nil {
		t.Fatalf("ResolveTarget(fr) error = %v", err)
	}
	if fr.IsRTL() {
		t.Error("French should be left-to-right")
	}

	zh, err := ResolveTarget("zh")
	if err != nil {
		t.Fatalf("ResolveTarget(zh) error = %v", err)
	}
	if !zh.CJK {
		t.Error("Chinese should be flagged CJK")
	}
}

func TestKnownLanguageCodesSorted(t *testing.T) {
	codes := KnownLanguageCodes()
	if len(codes) == 0 {
		t.Fatal("KnownLanguageCodes() is empty")
	}
	for i := 1; i < len(codes); i++ {
		if codes[i-1] >= codes[i] {
			t.Errorf("codes not sorted: %q before %q", codes[i-1], codes[i])
		}
	}
}
