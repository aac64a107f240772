package assets

import (
	"strings"

	"github.com/pkg/errors"
)

// TypeParameter returns the fully qualified type inside a generic tag,
// e.g. "0x1::Coin::CoinStore<0xa::Moon::Moon>" -> "0xa::Moon::Moon".
func TypeParameter(tag string) (string, error) {
	open := strings.Index(tag, "<")
	if open < 0 || !strings.HasSuffix(tag, ">") {
		return "", errors.Errorf("type tag %q has no type parameter", tag)
	}
	inner := tag[open+1 : len(tag)-1]
	if inner == "" {
		return "", errors.Errorf("type tag %q has an empty type parameter", tag)
	}
	return inner, nil
}

// CoinAddress extracts the defining address of the coin type embedded in a
// coin-store tag.
func CoinAddress(tag string) (string, error) {
	inner, err := TypeParameter(tag)
	if err != nil {
		return "", err
	}
	addr, _, ok := strings.Cut(inner, "::")
	if !ok || !strings.HasPrefix(addr, "0x") {
		return "", errors.Errorf("type parameter %q has no coin address", inner)
	}
	return addr, nil
}
