package mdtranslate

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestFallbackTranslatorFirstProviderWins(t *testing.T) {
	first := &fakeProvider{name: "deepl", batch: 50, fn: func(_ int, texts []string) ([]string, error) {
		return upperCase(texts), nil
	}}
	second := &fakeProvider{name: "azure", batch: 100, fn: func(int, []string) ([]string, error) {
		t.Fatal("second provider should not be called")
		return nil, nil
	}}
	tr := newFallbackTranslator(zerolog.Nop(), first, second)

	result, err := tr.Translate(context.Background(), []string{"a", "b"}, LanguageTarget{Code: "fr"})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.Provider != "deepl" || result.Fallback {
		t.Errorf("result = {provider %s, fallback %v}, want {deepl, false}", result.Provider, result.Fallback)
	}
	if result.Translations[0] != "X:a" || result.Translations[1] != "X:b" {
		t.Errorf("translations = %v", result.Translations)
	}
}

func TestFallbackTranslatorFallsThrough(t *testing.T) {
	first := &fakeProvider{name: "deepl", batch: 50, fn: func(int, []string) ([]string, error) {
		return nil, ErrProviderQuota
	}}
	second := &fakeProvider{name: "azure", batch: 100, fn: func(_ int, texts []string) ([]string, error) {
		return upperCase(texts), nil
	}}
	tr := newFallbackTranslator(zerolog.Nop(), first, second)

	result, err := tr.Translate(context.Background(), []string{"a", "b", "c"}, LanguageTarget{Code: "fr"})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if result.Provider != "azure" || !result.Fallback {
		t.Errorf("result = {provider %s, fallback %v}, want {azure, true}", result.Provider, result.Fallback)
	}
	if len(result.Translations) != 3 {
		t.Errorf("got %d translations, want 3 (no drops on fallback)", len(result.Translations))
	}
}

func TestFallbackTranslatorAllFail(t *testing.T) {
	first := &fakeProvider{name: "deepl", batch: 50, fn: func(int, []string) ([]string, error) {
		return nil, ErrProviderQuota
	}}
	second := &fakeProvider{name: "azure", batch: 100, fn: func(int, []string) ([]string, error) {
		return nil, ErrProviderAuth
	}}
	tr := newFallbackTranslator(zerolog.Nop(), first, second)

	_, err := tr.Translate(context.Background(), []string{"a"}, LanguageTarget{Code: "fr"})
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Translate() error = %v, want %v", err, ErrAllProvidersFailed)
	}
}

func TestFallbackTranslatorRejectsCountMismatch(t *testing.T) {
	p := &fakeProvider{name: "deepl", batch: 50, fn: func(_ int, texts []string) ([]string, error) {
		return texts[:1], nil
	}}
	tr := newFallbackTranslator(zerolog.Nop(), p)

	_, err := tr.Translate(context.Background(), []string{"a", "b"}, LanguageTarget{Code: "fr"})
	if !errors.Is(err, ErrCountMismatch) && !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Translate() error = %v, want count mismatch", err)
	}
}

func TestFallbackTranslatorNoProviders(t *testing.T) {
	tr := newFallbackTranslator(zerolog.Nop())
	_, err := tr.Translate(context.Background(), []string{"a"}, LanguageTarget{Code: "fr"})
	if !errors.Is(err, ErrNoProviders) {
		t.Errorf("Translate() error = %v, want %v", err, ErrNoProviders)
	}
}

func TestNewTranslator(t *testing.T) {
	tests := []struct {
		name    string
		choice  string
		creds   ProviderCredentials
		wantErr error
	}{
		{"auto with deepl key", ProviderAuto, ProviderCredentials{DeepLKey: "k"}, nil},
		{"auto with azure key", ProviderAuto, ProviderCredentials{AzureKey: "k"}, nil},
		{"auto without credentials", ProviderAuto, ProviderCredentials{}, ErrNoProviders},
		{"empty choice defaults to auto", "", ProviderCredentials{DeepLKey: "k"}, nil},
		{"pinned deepl without key", ProviderDeepL, ProviderCredentials{}, ErrProviderAuth},
		{"pinned azure without key", ProviderAzure, ProviderCredentials{}, ErrProviderAuth},
		{"unknown provider", "bing", ProviderCredentials{DeepLKey: "k"}, ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := NewTranslator(tt.choice, tt.creds, zerolog.Nop())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewTranslator() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewTranslator() error = %v", err)
			}
			if tr == nil {
				t.Fatal("NewTranslator() returned nil translator")
			}
		})
	}
}
