package mdtranslate

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// Provider selection values accepted by NewTranslator.
const (
	ProviderAuto  = "auto"
	ProviderDeepL = "deepl"
	ProviderAzure = "azure"
)

// ProviderCredentials carries per-provider API credentials. Credentials are
// passed in explicitly; core logic never reads ambient environment state.
type ProviderCredentials struct {
	DeepLKey    string
	AzureKey    string
	AzureRegion string
}

// fallbackTranslator tries providers in a fixed priority order. On any
// provider failure it falls through to the next provider with the same batch.
// A language either gets output from exactly one provider or fails as a unit;
// no mixed-provider output.
type fallbackTranslator struct {
	providers []Provider
	log       zerolog.Logger
}

// NewTranslator builds the provider abstraction for one pipeline run.
// choice pins a provider, or ProviderAuto builds an ordered fallback chain
// (DeepL first, then Azure) from whichever credentials are present.
func NewTranslator(choice string, creds ProviderCredentials, log zerolog.Logger) (Translator, error) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case ProviderDeepL:
		p, err := NewDeepLProvider(creds.DeepLKey)
		if err != nil {
			return nil, err
		}
		return &fallbackTranslator{providers: []Provider{p}, log: log}, nil

	case ProviderAzure:
		p, err := NewAzureProvider(creds.AzureKey, creds.AzureRegion)
		if err != nil {
			return nil, err
		}
		return &fallbackTranslator{providers: []Provider{p}, log: log}, nil

	case ProviderAuto, "":
		var providers []Provider
		if creds.DeepLKey != "" {
			if p, err := NewDeepLProvider(creds.DeepLKey); err == nil {
				providers = append(providers, p)
			}
		}
		if creds.AzureKey != "" {
			if p, err := NewAzureProvider(creds.AzureKey, creds.AzureRegion); err == nil {
				providers = append(providers, p)
			}
		}
		if len(providers) == 0 {
			return nil, fmt.Errorf("%w: set DEEPL_API_KEY or AZURE_TRANSLATOR_KEY", ErrNoProviders)
		}
		return &fallbackTranslator{providers: providers, log: log}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, choice)
	}
}

// newFallbackTranslator builds a translator over an explicit provider chain.
// Used by tests and by callers with custom Provider implementations.
func newFallbackTranslator(log zerolog.Logger, providers ...Provider) *fallbackTranslator {
	return &fallbackTranslator{providers: providers, log: log}
}

// Translate runs the batch through the provider chain. Transient failures are
// retried with backoff before falling through; auth and malformed-input
// failures fall through immediately. If every provider fails the language
// fails as a unit.
func (f *fallbackTranslator) Translate(ctx context.Context, texts []string, target LanguageTarget) (*TranslationResult, error) {
	if len(f.providers) == 0 {
		return nil, ErrNoProviders
	}

	var failures []string
	for i, p := range f.providers {
		out, err := translateWithRetry(ctx, p, texts, target)
		if err == nil {
			if len(out) != len(texts) {
				// Adapter contract: enforce 1:1 correspondence rather
				// than guessing alignment.
				return nil, fmt.Errorf("%w: %s sent %d, received %d",
					ErrCountMismatch, p.Name(), len(texts), len(out))
			}
			if i > 0 {
				f.log.Warn().Str("provider", p.Name()).Str("lang", target.Code).
					Msg("translated via fallback provider")
			}
			return &TranslationResult{
				Translations: resultMap(out),
				Provider:     p.Name(),
				Fallback:     i > 0,
			}, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.log.Warn().Err(err).Str("provider", p.Name()).Str("lang", target.Code).
			Msg("provider failed, trying next")
		failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))
	}

	return nil, fmt.Errorf("%w: %s", ErrAllProvidersFailed, strings.Join(failures, "; "))
}
