package services

import "unicode/utf8"

const (
	// MaxShortDescriptionLength caps the derived short description, marker included.
	MaxShortDescriptionLength = 100
	// TruncationMarker ends every shortened description.
	TruncationMarker = "..."
)

// ShortenDescription derives the short description shown in listings.
// Descriptions of up to MaxShortDescriptionLength characters are returned unchanged; longer ones are cut
// so that the result, marker included, is exactly MaxShortDescriptionLength characters.
func ShortenDescription(description string) string {
	if utf8.RuneCountInString(description) <= MaxShortDescriptionLength {
		return description
	}
	keep := MaxShortDescriptionLength - utf8.RuneCountInString(TruncationMarker)
	return string([]rune(description)[:keep]) + TruncationMarker
}
