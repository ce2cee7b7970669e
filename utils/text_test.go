// backend/utils/text_test.go
package utils

import "testing"

func TestTruncate(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "shorter than max", in: "hello", max: 10, want: "hello"},
		{name: "exactly max", in: "hello", max: 5, want: "hello"},
		{name: "longer than max", in: "hello world", max: 5, want: "hello"},
		{name: "trims whitespace first", in: "  hello  ", max: 10, want: "hello"},
		{name: "multibyte runes kept whole", in: "héllo wörld", max: 6, want: "héllo "},
		{name: "empty", in: "", max: 5, want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.max); got != tc.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}
