package mdtranslate

import (
	"fmt"
	"sort"
	"strings"
)

// TextDirection is the script direction of a language.
type TextDirection int

const (
	DirectionLTR TextDirection = iota
	DirectionRTL
)

func (d TextDirection) String() string {
	if d == DirectionRTL {
		return "rtl"
	}
	return "ltr"
}

// LanguageTarget is a requested output language plus its script metadata.
// Targets are resolved once per requested code, before any translation call.
type LanguageTarget struct {
	Code      string        // short filename code: "en", "fr", "ar", "zh"
	Name      string        // human-readable name used for cloud folders
	DeepL     string        // DeepL target_lang code
	Azure     string        // Azure Translator BCP-47 code
	Direction TextDirection // script direction
	Font      string        // serif font for this script
	CJK       bool          // requires CJK-capable glyph substitution
}

// IsRTL reports whether the target uses a right-to-left script.
func (t LanguageTarget) IsRTL() bool { return t.Direction == DirectionRTL }

// Default fonts per script family.
const (
	defaultFont   = "Times New Roman"
	monospaceFont = "Courier New"
	cjkFont       = "SimSun"
	arabicFont    = "Amiri"
)

// languageTargets is the known-language table. The EN entry defaults to the
// British regional variant on DeepL, which has no plain "EN" target.
var languageTargets = map[string]LanguageTarget{
	"es": {Code: "es", Name: "Español", DeepL: "ES", Azure: "es", Font: defaultFont},
	"en": {Code: "en", Name: "Inglés", DeepL: "EN-GB", Azure: "en-GB", Font: defaultFont},
	"fr": {Code: "fr", Name: "Francés", DeepL: "FR", Azure: "fr", Font: defaultFont},
	"de": {Code: "de", Name: "Alemán", DeepL: "DE", Azure: "de", Font: defaultFont},
	"it": {Code: "it", Name: "Italiano", DeepL: "IT", Azure: "it", Font: defaultFont},
	"pt": {Code: "pt", Name: "Portugués", DeepL: "PT-PT", Azure: "pt-pt", Font: defaultFont},
	"ar": {Code: "ar", Name: "Árabe", DeepL: "AR", Azure: "ar", Direction: DirectionRTL, Font: arabicFont},
	"zh": {Code: "zh", Name: "Chino", DeepL: "ZH", Azure: "zh-Hans", Font: cjkFont, CJK: true},
}

// deeplAliases maps DeepL-style request codes back to short codes, so callers
// may pass either "en" or "EN-GB".
var deeplAliases = map[string]string{
	"en-gb":   "en",
	"en-us":   "en",
	"pt-pt":   "pt",
	"pt-br":   "pt",
	"zh-hans": "zh",
}

// ResolveTarget maps a free-form language code to its LanguageTarget.
// Accepts short codes ("en") and provider-style codes ("EN-GB"), case
// insensitively. Unknown codes return ErrUnknownLanguage.
func ResolveTarget(code string) (LanguageTarget, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if alias, ok := deeplAliases[normalized]; ok {
		normalized = alias
	}
	target, ok := languageTargets[normalized]
	if !ok {
		return LanguageTarget{}, fmt.Errorf("%w: %q (known: %s)",
			ErrUnknownLanguage, code, strings.Join(KnownLanguageCodes(), ", "))
	}
	return target, nil
}

// ResolveTargets resolves a list of codes, rejecting the whole request on the
// first unknown code. Validation happens before translation begins.
func ResolveTargets(codes []string) ([]LanguageTarget, error) {
	targets := make([]LanguageTarget, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		target, err := ResolveTarget(code)
		if err != nil {
			return nil, err
		}
		if seen[target.Code] {
			continue
		}
		seen[target.Code] = true
		targets = append(targets, target)
	}
	return targets, nil
}

// KnownLanguageCodes returns the sorted short codes of every known language.
func KnownLanguageCodes() []string {
	codes := make([]string, 0, len(languageTargets))
	for code := range languageTargets {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
