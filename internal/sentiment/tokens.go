package sentiment

import (
	"strings"
	"unicode"
)

// token is one word of input with its case preserved
type token struct {
	raw   string
	lower string
}

// tokenize splits on whitespace and trims surrounding punctuation
func tokenize(text string) []token {
	fields := strings.Fields(text)
	tokens := make([]token, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) && r != '\''
		})
		w = strings.Trim(w, "'")
		if w == "" {
			continue
		}
		tokens = append(tokens, token{raw: w, lower: strings.ToLower(w)})
	}
	return tokens
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
