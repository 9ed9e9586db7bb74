package phone

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"(714) 555-0100", "7145550100"},
		{"714-555-0100", "7145550100"},
		{"+1 714 555 0100", "17145550100"},
		{"714.555.0100", "7145550100"},
		{"7145550100", "7145550100"},
		{"", ""},
		{"call me", ""},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize("+1 (714) 555-0100")
	if twice := Normalize(once); twice != once {
		t.Errorf("Normalize not stable: %q -> %q", once, twice)
	}
}

func TestLast10(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+17145550100", "7145550100"},
		{"17145550100", "7145550100"},
		{"7145550100", "7145550100"},
		{"555-0100", "5550100"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := Last10(tc.in); got != tc.want {
			t.Errorf("Last10(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
