package sanitizer

import (
	"path"
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reKeepKeyChars    = regexp.MustCompile(`[^0-9\p{L}\-]+`)
	reTrimUnderscores = regexp.MustCompile(`_+`)
)

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func collapseUnderscores(s string) string {
	s = reTrimUnderscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

func SanitizeEmail(input string) string {
	return trimAndLower(input)
}

// SanitizeFileName keeps the extension and reduces the base name to
// letters, digits, dashes and underscores.
func SanitizeFileName(input string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(input), `\`, "/"))
	if name == "." || name == "/" {
		return ""
	}

	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)

	p := Pipeline{
		trimAndLower,
		func(s string) string { return reKeepKeyChars.ReplaceAllString(s, "_") },
		collapseUnderscores,
	}
	base = p.Apply(base)
	ext = p.Apply(strings.TrimPrefix(ext, "."))

	switch {
	case base == "" && ext == "":
		return ""
	case base == "":
		return "file." + ext
	case ext == "":
		return base
	}
	return base + "." + ext
}

func SanitizeSlice(values []string, strategy Strategy) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, v := range values {
		s := strategy(v)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}
