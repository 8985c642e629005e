package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the fixed content languages every translatable field carries.
type Language string

const (
	Uzbek     Language = "uz"
	Russian   Language = "ru"
	English   Language = "en"
	Spanish   Language = "sp"
	Ukrainian Language = "uk"
	Italian   Language = "it"
	German    Language = "ge"
)

// Languages lists the content languages in display order.
var Languages = []Language{Uzbek, Russian, English, Spanish, Ukrainian, Italian, German}

// The translation provider speaks BCP 47; only two internal codes differ.
var providerCodes = map[Language]string{
	Spanish: "es",
	German:  "de",
}

func (l Language) String() string {
	return string(l)
}

func (l Language) Valid() bool {
	for _, known := range Languages {
		if l == known {
			return true
		}
	}
	return false
}

// ProviderCode returns the code the external translation provider expects.
func (l Language) ProviderCode() string {
	if code, ok := providerCodes[l]; ok {
		return code
	}
	return string(l)
}

// Tag returns the BCP 47 tag for the language.
func (l Language) Tag() language.Tag {
	return language.Make(l.ProviderCode())
}

func Parse(code string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(code)))
	if !l.Valid() {
		return "", fmt.Errorf("unsupported language code %q", code)
	}
	return l, nil
}

func ParseAll(codes []string) ([]Language, error) {
	out := make([]Language, 0, len(codes))
	seen := make(map[Language]bool, len(codes))
	for _, code := range codes {
		l, err := Parse(code)
		if err != nil {
			return nil, err
		}
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out, nil
}

// FromProviderCode maps a provider (BCP 47) code back to a content language.
// Region subtags are ignored, so "es-419" resolves to Spanish.
func FromProviderCode(code string) (Language, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	for _, l := range Languages {
		if l.ProviderCode() == base.String() {
			return l, true
		}
	}
	return "", false
}
