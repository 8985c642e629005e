package sanitizer

import "strings"

// TrimAndNormalize collapses every whitespace run to one space.
func TrimAndNormalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeNotes keeps line breaks, unifies them to \n and trims the ends.
func NormalizeNotes(notes string) string {
	notes = strings.ReplaceAll(notes, "\r\n", "\n")
	return strings.TrimSpace(notes)
}
