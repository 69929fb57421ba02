package mdtranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DeepL API hosts. Keys ending in ":fx" belong to the free plan.
const (
	deeplProHost  = "https://api.deepl.com"
	deeplFreeHost = "https://api-free.deepl.com"

	deeplMaxBatch = 50
	deeplTimeout  = 60 * time.Second
)

// DeepLProvider translates text through the DeepL v2 JSON API.
type DeepLProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewDeepLProvider creates a DeepL provider for the given API key. The free
// or pro host is selected from the key suffix.
func NewDeepLProvider(apiKey string) (*DeepLProvider, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, fmt.Errorf("%w: DeepL API key is empty", ErrProviderAuth)
	}
	host := deeplProHost
	if strings.HasSuffix(key, ":fx") {
		host = deeplFreeHost
	}
	return &DeepLProvider{
		apiKey:  key,
		baseURL: host,
		client:  &http.Client{Timeout: deeplTimeout},
	}, nil
}

func (p *DeepLProvider) Name() string { return "deepl" }

func (p *DeepLProvider) MaxBatchSize() int { return deeplMaxBatch }

type deeplRequest struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
}

type deeplResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate sends texts to DeepL in batches of at most 50, preserving order.
func (p *DeepLProvider) Translate(ctx context.Context, texts []string, target LanguageTarget) ([]string, error) {
	return translateBatches(texts, p.MaxBatchSize(), func(chunk []string) ([]string, error) {
		return p.translateChunk(ctx, chunk, target.DeepL)
	})
}

func (p *DeepLProvider) translateChunk(ctx context.Context, chunk []string, targetLang string) ([]string, error) {
	body, err := json.Marshal(deeplRequest{Text: chunk, TargetLang: targetLang})
	if err != nil {
		return nil, fmt.Errorf("deepl: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v2/translate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("deepl: build request: %w", err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, markTransient(fmt.Errorf("deepl: send request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, markTransient(fmt.Errorf("deepl: read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("deepl: %w (status %d)", ErrProviderAuth, resp.StatusCode)
	case resp.StatusCode == 456:
		// DeepL's non-standard "quota exceeded" status.
		return nil, fmt.Errorf("deepl: %w", ErrProviderQuota)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, markTransient(fmt.Errorf("deepl: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	default:
		return nil, fmt.Errorf("deepl: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed deeplResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("deepl: %w: %v", ErrMalformedResponse, err)
	}

	out := make([]string, 0, len(parsed.Translations))
	for _, t := range parsed.Translations {
		out = append(out, t.Text)
	}
	return out, nil
}
