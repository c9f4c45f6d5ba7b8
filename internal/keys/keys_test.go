package keys

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"Pikachu":        "pikachu",
		"  Mr.   Mime ":  "mr. mime",
		"BULBASAUR":      "bulbasaur",
		"":               "",
		"\tTapu\nKoko  ": "tapu koko",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPageKey(t *testing.T) {
	if a, b := PageKey(1, 10), PageKey(10, 1); a == b {
		t.Fatalf("expected distinct keys, got %q and %q", a, b)
	}
}
