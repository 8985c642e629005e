package translate

import (
	"html"
	"testing"
)

func TestDecodeHTMLEntities(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"Tom&#39;s", "Tom's"},
		{"&quot;quoted&quot;", `"quoted"`},
		{"a &amp; b", "a & b"},
		{"&lt;b&gt;", "<b>"},
		{"one&nbsp;two", "one two"},
		{"&amp;nbsp;", "&nbsp;"},
		{"&amp;amp;", "&amp;"},
		{"it&#8217;s", "it's"},
		{"&#8216;Registan&#8217;", "'Registan'"},
		{"&#8220;Silk&#8221;", `"Silk"`},
		{"&amp;#8217;", "&#8217;"},
	}

	for _, tt := range tests {
		if got := DecodeHTMLEntities(tt.in); got != tt.want {
			t.Errorf("DecodeHTMLEntities(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeHTMLEntities_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Samarqand",
		`He said "hi" & left`,
		"It's <fine>",
		"&amp; already escaped",
		"&nbsp;",
		"Ташкент & Бухара",
	}
	for _, s := range inputs {
		if got := DecodeHTMLEntities(html.EscapeString(s)); got != s {
			t.Errorf("round trip of %q gave %q", s, got)
		}
	}
}
