package dictionary

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	punctuationPattern = regexp.MustCompile(`[.,;:!?()\[\]{}"'“”‘’/\\\-–—…]`)
	// Lowercase Latin plus the letters of the Latin-1 supplement, Latin Extended-A/B and Latin Extended
	// Additional blocks, which cover Mizo letters such as â, ê and ṭ. × and ÷ are not letters.
	tokenPattern = regexp.MustCompile(`^[a-z\x{00C0}-\x{00D6}\x{00D8}-\x{00F6}\x{00F8}-\x{024F}\x{1E00}-\x{1EFF}]+$`)
)

const minTokenLength = 3

// Tokens splits a definition into the distinct reverse index keys it contributes, in order of appearance.
func Tokens(definition string) []string {
	normalized := punctuationPattern.ReplaceAllString(definition, " ")

	var tokens []string
	seen := make(map[string]struct{})
	for _, token := range strings.Fields(normalized) {
		if !isIndexable(token) {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}

func isIndexable(token string) bool {
	if utf8.RuneCountInString(token) < minTokenLength {
		return false
	}
	first, _ := utf8.DecodeRuneInString(token)
	if unicode.IsDigit(first) {
		return false
	}
	for _, r := range token {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return tokenPattern.MatchString(token)
}
