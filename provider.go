package mdtranslate

import (
	"context"
	"fmt"
)

// Provider translates an ordered batch of texts into one target language.
// Implementations must preserve order and count: segment i of the input maps
// to segment i of the output. Backends that reorder or merge strings are
// adapted at this boundary before results are returned.
type Provider interface {
	// Name identifies the provider in reports and logs.
	Name() string
	// MaxBatchSize is the largest slice one transport call may carry.
	MaxBatchSize() int
	// Translate returns the translated texts in input order. Batching
	// happens inside: batch boundaries only group transport calls, they
	// never change segmentation.
	Translate(ctx context.Context, texts []string, target LanguageTarget) ([]string, error)
}

// TranslationResult maps segment position indexes to translated text for one
// (document, language) pair. It records which provider produced the output
// and whether a fallback occurred. Discarded after reassembly.
type TranslationResult struct {
	Translations map[int]string
	Provider     string
	Fallback     bool
}

// Translator is the provider abstraction the orchestrator depends on: a
// single capability interface regardless of how many backends sit behind it.
type Translator interface {
	Translate(ctx context.Context, texts []string, target LanguageTarget) (*TranslationResult, error)
}

// translateBatches splits texts into chunks of at most max and concatenates
// the per-chunk results, enforcing the 1:1 length contract on each call.
func translateBatches(texts []string, max int, call func(chunk []string) ([]string, error)) ([]string, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	results := make([]string, 0, len(texts))
	for start := 0; start < len(texts); start += max {
		end := min(start+max, len(texts))
		chunk := texts[start:end]

		out, err := call(chunk)
		if err != nil {
			return nil, err
		}
		if len(out) != len(chunk) {
			return nil, fmt.Errorf("%w: sent %d segments, received %d",
				ErrMalformedResponse, len(chunk), len(out))
		}
		results = append(results, out...)
	}
	return results, nil
}

// resultMap converts an ordered output slice to a position-index map.
func resultMap(texts []string) map[int]string {
	m := make(map[int]string, len(texts))
	for i, t := range texts {
		m[i] = t
	}
	return m
}
