package model

import (
	"fmt"
	"strings"

	"github.com/Dotlabs-uz/pilavtour-admin/pkg/locale"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// MultiLangText holds the same text in every content language.
// All seven keys are written on every persist; empty strings are allowed.
type MultiLangText struct {
	Uz string `json:"uz" bson:"uz"`
	Ru string `json:"ru" bson:"ru"`
	En string `json:"en" bson:"en"`
	Sp string `json:"sp" bson:"sp"`
	Uk string `json:"uk" bson:"uk"`
	It string `json:"it" bson:"it"`
	Ge string `json:"ge" bson:"ge"`
}

type IncompleteTextError struct {
	Missing []locale.Language
}

func (e *IncompleteTextError) Error() string {
	codes := make([]string, len(e.Missing))
	for i, l := range e.Missing {
		codes[i] = string(l)
	}
	return fmt.Sprintf("multi-language text is missing languages: %s", strings.Join(codes, ", "))
}

func (m *MultiLangText) field(lang locale.Language) *string {
	switch lang {
	case locale.Uzbek:
		return &m.Uz
	case locale.Russian:
		return &m.Ru
	case locale.English:
		return &m.En
	case locale.Spanish:
		return &m.Sp
	case locale.Ukrainian:
		return &m.Uk
	case locale.Italian:
		return &m.It
	case locale.German:
		return &m.Ge
	}
	return nil
}

func (m MultiLangText) Get(lang locale.Language) string {
	if f := m.field(lang); f != nil {
		return *f
	}
	return ""
}

func (m *MultiLangText) Set(lang locale.Language, value string) {
	if f := m.field(lang); f != nil {
		*f = value
	}
}

// Uniform returns a text with every language set to value.
func Uniform(value string) MultiLangText {
	var m MultiLangText
	for _, l := range locale.Languages {
		m.Set(l, value)
	}
	return m
}

func (m MultiLangText) IsBlank() bool {
	for _, l := range locale.Languages {
		if strings.TrimSpace(m.Get(l)) != "" {
			return false
		}
	}
	return true
}

func (m MultiLangText) IsComplete() bool {
	for _, l := range locale.Languages {
		if strings.TrimSpace(m.Get(l)) == "" {
			return false
		}
	}
	return true
}

// Values returns the non-empty values, used for searching across languages.
func (m MultiLangText) Values() []string {
	out := make([]string, 0, len(locale.Languages))
	for _, l := range locale.Languages {
		if v := m.Get(l); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// UnmarshalBSON refuses documents that do not carry every language key,
// so an absent key is never read back as an empty translation.
func (m *MultiLangText) UnmarshalBSON(data []byte) error {
	raw := bson.Raw(data)
	if err := raw.Validate(); err != nil {
		return fmt.Errorf("invalid multi-language document: %w", err)
	}

	var out MultiLangText
	var missing []locale.Language
	for _, l := range locale.Languages {
		v, err := raw.LookupErr(string(l))
		if err != nil {
			missing = append(missing, l)
			continue
		}
		if v.Type != bsontype.String {
			return fmt.Errorf("multi-language key %q has type %s, want string", l, v.Type)
		}
		out.Set(l, v.StringValue())
	}
	if len(missing) > 0 {
		return &IncompleteTextError{Missing: missing}
	}

	*m = out
	return nil
}
