package mdtranslate

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// Segmentation errors (fatal, raised before any network call).
	ErrSegmentation       = errors.New("markdown segmentation failed")
	ErrUnterminatedFence  = errors.New("unterminated code fence")
	ErrUnbalancedBrackets = errors.New("unbalanced link brackets")

	// Reassembly errors (translation/segment mismatch for one language).
	ErrReassembly    = errors.New("reassembly failed")
	ErrCountMismatch = errors.New("translated segment count does not match source")

	// Provider errors.
	ErrProviderAuth       = errors.New("provider authentication failed")
	ErrProviderQuota      = errors.New("provider quota exceeded")
	ErrMalformedResponse  = errors.New("provider returned a malformed response")
	ErrAllProvidersFailed = errors.New("all translation providers failed")
	ErrNoProviders        = errors.New("no translation provider configured")
	ErrUnknownProvider    = errors.New("unknown translation provider")

	// Language validation errors.
	ErrUnknownLanguage = errors.New("unknown language code")

	// Rendering errors.
	ErrRender               = errors.New("document rendering failed")
	ErrCloudAuth            = errors.New("cloud credentials missing or expired")
	ErrConverterUnavailable = errors.New("PDF converter not available")
	ErrPDFConversion        = errors.New("PDF conversion failed")
)
