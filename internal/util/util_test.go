package util

import "testing"

func TestNormalizePassword(t *testing.T) {
	// U+00E9 (precomposed) and U+0065 U+0301 (combining) must normalize
	// to the same bytes before being sent to the server.
	composed := "café"
	decomposed := "café"

	if NormalizePassword(composed) != NormalizePassword(decomposed) {
		t.Fatal("expected composed and decomposed forms to normalize identically")
	}
}

func TestNormalizePasswordASCIIUnchanged(t *testing.T) {
	if got := NormalizePassword("hunter2"); got != "hunter2" {
		t.Fatalf("got %q, want %q", got, "hunter2")
	}
}
