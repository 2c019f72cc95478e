package normalization

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ParseInputString trims, lowercases and NFC-normalises user input so that
// composed and decomposed accents compare equal.
func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(input)))
}

func ParseInputStringPtr(input *string) *string {
	if input == nil {
		return nil
	}
	normalized := ParseInputString(*input)
	return &normalized
}
