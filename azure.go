package mdtranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Azure Text Translation API v3.0.
const (
	azureHost     = "https://api.cognitive.microsofttranslator.com"
	azureMaxBatch = 100
	azureTimeout  = 60 * time.Second
)

// AzureProvider translates text through the Azure AI Translator API.
type AzureProvider struct {
	apiKey  string
	region  string
	baseURL string
	client  *http.Client
}

// NewAzureProvider creates an Azure provider. The region is optional for
// global resources.
func NewAzureProvider(apiKey, region string) (*AzureProvider, error) {
	key := strings.TrimSpace(apiKey)
	if key == "" {
		return nil, fmt.Errorf("%w: Azure Translator key is empty", ErrProviderAuth)
	}
	return &AzureProvider{
		apiKey:  key,
		region:  strings.TrimSpace(region),
		baseURL: azureHost,
		client:  &http.Client{Timeout: azureTimeout},
	}, nil
}

func (p *AzureProvider) Name() string { return "azure" }

func (p *AzureProvider) MaxBatchSize() int { return azureMaxBatch }

type azureItem struct {
	Text string `json:"text"`
}

type azureResponse []struct {
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}

// Translate sends texts to Azure in batches of at most 100, preserving order.
// The target's Azure BCP-47 code is used, e.g. zh-Hans for Chinese.
func (p *AzureProvider) Translate(ctx context.Context, texts []string, target LanguageTarget) ([]string, error) {
	return translateBatches(texts, p.MaxBatchSize(), func(chunk []string) ([]string, error) {
		return p.translateChunk(ctx, chunk, target.Azure)
	})
}

func (p *AzureProvider) translateChunk(ctx context.Context, chunk []string, targetLang string) ([]string, error) {
	items := make([]azureItem, len(chunk))
	for i, t := range chunk {
		items[i] = azureItem{Text: t}
	}
	body, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("azure: marshal request: %w", err)
	}

	query := url.Values{}
	query.Set("api-version", "3.0")
	query.Set("to", targetLang)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/translate?"+query.Encode(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("azure: build request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if p.region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", p.region)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, markTransient(fmt.Errorf("azure: send request: %w", err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, markTransient(fmt.Errorf("azure: read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("azure: %w (status 401)", ErrProviderAuth)
	case resp.StatusCode == http.StatusForbidden:
		// Azure reports exhausted tier quota as 403.
		if strings.Contains(strings.ToLower(string(respBody)), "out of call volume quota") {
			return nil, fmt.Errorf("azure: %w", ErrProviderQuota)
		}
		return nil, fmt.Errorf("azure: %w (status 403)", ErrProviderAuth)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, markTransient(fmt.Errorf("azure: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody))))
	default:
		return nil, fmt.Errorf("azure: status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed azureResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("azure: %w: %v", ErrMalformedResponse, err)
	}

	out := make([]string, 0, len(parsed))
	for _, item := range parsed {
		if len(item.Translations) == 0 {
			return nil, fmt.Errorf("azure: %w: item without translations", ErrMalformedResponse)
		}
		out = append(out, item.Translations[0].Text)
	}
	return out, nil
}
