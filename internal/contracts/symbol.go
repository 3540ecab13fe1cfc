package contracts

import (
	"fmt"
	"strings"
)

// FormatSymbol upper-cases and trims a ticker and appends the exchange
// suffix (".NS") when missing.
func FormatSymbol(symbol, suffix string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" || strings.ContainsAny(s, " /?#&") {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	suffix = strings.ToUpper(suffix)
	if suffix != "" && !strings.HasSuffix(s, suffix) {
		s += suffix
	}
	return s, nil
}

// BareSymbol strips an exchange suffix ("RELIANCE.NS" → "RELIANCE")
func BareSymbol(symbol string) string {
	if i := strings.LastIndex(symbol, "."); i > 0 {
		return symbol[:i]
	}
	return symbol
}
