package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/locale"
)

// TextInput is a translatable form field. It arrives either as a plain
// string, which is translated into every language, or as an object of
// per-language values, which is normalized and stored as given.
type TextInput struct {
	Source string
	Values *MultiLangText
}

func Text(source string) TextInput {
	return TextInput{Source: source}
}

func Localized(values MultiLangText) TextInput {
	return TextInput{Values: &values}
}

// NeedsTranslation reports whether the input is a source string.
func (t TextInput) NeedsTranslation() bool {
	return t.Values == nil
}

func (t TextInput) IsBlank() bool {
	if t.Values != nil {
		return t.Values.IsBlank()
	}
	return strings.TrimSpace(t.Source) == ""
}

func (t *TextInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = TextInput{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = TextInput{Source: s}
		return nil
	}

	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("text must be a string or an object of languages: %w", err)
	}

	var m MultiLangText
	for code, v := range values {
		l, err := locale.Parse(code)
		if err != nil {
			return err
		}
		m.Set(l, v)
	}
	*t = TextInput{Values: &m}
	return nil
}

func (t TextInput) MarshalJSON() ([]byte, error) {
	if t.Values != nil {
		return json.Marshal(t.Values)
	}
	return json.Marshal(t.Source)
}
