package sanitizer

// NormalizeURLs trims image and link lists and drops blanks and repeats.
func NormalizeURLs(urls []string) []string {
	return SanitizeSlice(urls, TrimAndNormalize)
}
