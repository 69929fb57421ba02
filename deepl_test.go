package mdtranslate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestDeepL(t *testing.T, handler http.HandlerFunc) (*DeepLProvider, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &DeepLProvider{apiKey: "key", baseURL: srv.URL, client: srv.Client()}, srv
}

func TestNewDeepLProviderHostSelection(t *testing.T) {
	free, err := NewDeepLProvider("abc123:fx")
	if err != nil {
		t.Fatalf("NewDeepLProvider() error = %v", err)
	}
	if free.baseURL != deeplFreeHost {
		t.Errorf("free key baseURL = %s, want %s", free.baseURL, deeplFreeHost)
	}

	pro, err := NewDeepLProvider("abc123")
	if err != nil {
		t.Fatalf("NewDeepLProvider() error = %v", err)
	}
	if pro.baseURL != deeplProHost {
		t.Errorf("pro key baseURL = %s, want %s", pro.baseURL, deeplProHost)
	}

	if _, err := NewDeepLProvider("  "); !errors.Is(err, ErrProviderAuth) {
		t.Errorf("empty key error = %v, want %v", err, ErrProviderAuth)
	}
}

func TestDeepLTranslate(t *testing.T) {
	var gotAuth, gotTarget string
	p, _ := newTestDeepL(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var req deeplRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotTarget = req.TargetLang

		resp := deeplResponse{}
		for _, txt := range req.Text {
			resp.Translations = append(resp.Translations, struct {
				Text string `json:"text"`
			}{Text: "fr:" + txt})
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	target, _ := ResolveTarget("fr")
	out, err := p.Translate(context.Background(), []string{"one", "two"}, target)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if gotAuth != "DeepL-Auth-Key key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotTarget != "FR" {
		t.Errorf("target_lang = %q, want FR", gotTarget)
	}
	if len(out) != 2 || out[0] != "fr:one" || out[1] != "fr:two" {
		t.Errorf("out = %v, order must be preserved", out)
	}
}

func TestDeepLTranslateBatches(t *testing.T) {
	requests := 0
	p, _ := newTestDeepL(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		var req deeplRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Text) > deeplMaxBatch {
			t.Errorf("request carried %d texts, max is %d", len(req.Text), deeplMaxBatch)
		}
		resp := deeplResponse{}
		for _, txt := range req.Text {
			resp.Translations = append(resp.Translations, struct {
				Text string `json:"text"`
			}{Text: txt})
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	texts := make([]string, deeplMaxBatch*2+5)
	for i := range texts {
		texts[i] = "t"
	}
	target, _ := ResolveTarget("fr")
	out, err := p.Translate(context.Background(), texts, target)
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if len(out) != len(texts) {
		t.Errorf("got %d results, want %d", len(out), len(texts))
	}
	if requests != 3 {
		t.Errorf("made %d requests, want 3", requests)
	}
}

func TestDeepLStatusMapping(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantErr       error
		wantTransient bool
	}{
		{"unauthorized", http.StatusUnauthorized, ErrProviderAuth, false},
		{"forbidden", http.StatusForbidden, ErrProviderAuth, false},
		{"quota exceeded", 456, ErrProviderQuota, false},
		{"rate limited", http.StatusTooManyRequests, nil, true},
		{"server error", http.StatusBadGateway, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestDeepL(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			target, _ := ResolveTarget("fr")
			_, err := p.Translate(context.Background(), []string{"x"}, target)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if isTransient(err) != tt.wantTransient {
				t.Errorf("isTransient = %v, want %v", isTransient(err), tt.wantTransient)
			}
		})
	}
}

func TestDeepLMalformedResponse(t *testing.T) {
	p, _ := newTestDeepL(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})
	target, _ := ResolveTarget("fr")
	_, err := p.Translate(context.Background(), []string{"x"}, target)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("error = %v, want %v", err, ErrMalformedResponse)
	}
}
