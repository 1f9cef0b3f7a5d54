package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Common English names accepted in place of codes.
var byWord = map[string]string{
	"english":    "en",
	"spanish":    "es",
	"french":     "fr",
	"german":     "de",
	"italian":    "it",
	"portuguese": "pt",
	"japanese":   "ja",
	"korean":     "ko",
	"chinese":    "zh",
	"russian":    "ru",
	"arabic":     "ar",
	"hindi":      "hi",
	"dutch":      "nl",
	"polish":     "pl",
	"swedish":    "sv",
	"danish":     "da",
	"norwegian":  "no",
	"finnish":    "fi",
	"icelandic":  "is",
}

// Parse resolves code to its base language. ok is false for empty or
// unrecognized input.
func Parse(code string) (language.Base, bool) {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return language.Base{}, false
	}
	if mapped, found := byWord[code]; found {
		code = mapped
	}
	tag, err := language.Parse(code)
	if err != nil {
		return language.Base{}, false
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return language.Base{}, false
	}
	return base, true
}

// ToISO2 converts a recognized language code or name to ISO 639-1.
// Returns the ISO 639-3 form for languages without a two-letter code and
// an empty string for unrecognized input.
func ToISO2(code string) string {
	base, ok := Parse(code)
	if !ok {
		return ""
	}
	return base.String()
}

// ToISO3 converts a recognized language code or name to ISO 639-3.
// Returns "und" for unrecognized input.
func ToISO3(code string) string {
	base, ok := Parse(code)
	if !ok {
		return "und"
	}
	return base.ISO3()
}

// DisplayName returns the English name for code, "Unknown" for empty input,
// or the uppercased code when unrecognized.
func DisplayName(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return "Unknown"
	}
	base, ok := Parse(trimmed)
	if !ok {
		return strings.ToUpper(trimmed)
	}
	tag, err := language.Compose(base)
	if err != nil {
		return strings.ToUpper(trimmed)
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return strings.ToUpper(trimmed)
}

// Valid reports whether code resolves to a known language.
func Valid(code string) bool {
	_, ok := Parse(code)
	return ok
}
