// Package sanitizer normalizes free-form admin input before validation and
// storage.
//
// All functions are idempotent and never fail: invalid input comes back as
// an empty string or an empty slice.
//
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Emails: trimmed and lowercased
//   - File names: reduced to a safe object-key segment ("My Photo (1).JPG" becomes "my_photo_1.jpg")
//   - Slices: drop empty values and duplicates after normalization
package sanitizer
