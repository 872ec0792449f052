package util

import "golang.org/x/text/unicode/norm"

// NormalizePassword applies NFKD normalization so that visually identical
// input produces identical bytes regardless of the platform's composition.
func NormalizePassword(s string) string {
	return norm.NFKD.String(s)
}
