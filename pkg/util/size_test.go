package util

import "testing"

func TestParseSize(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"2MB", 2 * 1024 * 1024},
		{"512KB", 512 * 1024},
		{"1024B", 1024},
		{"128", 128},
		{" 4mb ", 4 * 1024 * 1024},
	}
	for _, c := range cases {
		if got := ParseSize(c.in, 99); got != c.want {
			t.Errorf("ParseSize(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseSize_FallsBackToDefault(t *testing.T) {
	for _, in := range []string{"", "abc", "-5MB", "0"} {
		if got := ParseSize(in, 42); got != 42 {
			t.Errorf("ParseSize(%q) = %d, want default 42", in, got)
		}
	}
}
