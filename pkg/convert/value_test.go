package convert

import "testing"

func TestToString(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"plain string", "USD", "USD"},
		{"empty string", "", ""},
		{"number", float64(12), ""},
		{"bool", true, ""},
		{"nil", nil, ""},
		{"map", map[string]any{"a": 1}, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ToString(c.in); got != c.want {
				t.Errorf("ToString(%v) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestToPositiveInt(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"positive float", float64(25), 25},
		{"positive string", "30", 30},
		{"truncates fraction", 4.9, 4},
		{"zero", float64(0), 0},
		{"negative", float64(-3), 0},
		{"garbage string", "lots", 0},
		{"nil", nil, 0},
		{"bool", true, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ToPositiveInt(c.in); got != c.want {
				t.Errorf("ToPositiveInt(%v) = %d, want %d", c.in, got, c.want)
			}
		})
	}
}

func TestToNonNegativeInt(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"zero is kept", float64(0), 0},
		{"positive", float64(2), 2},
		{"negative falls back", float64(-5), 0},
		{"numeric string", " 3 ", 3},
		{"garbage", "x", 0},
		{"nil", nil, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ToNonNegativeInt(c.in); got != c.want {
				t.Errorf("ToNonNegativeInt(%v) = %d, want %d", c.in, got, c.want)
			}
		})
	}
}

func TestToBoolOr(t *testing.T) {
	cases := []struct {
		name string
		in   any
		def  bool
		want bool
	}{
		{"true", true, false, true},
		{"false", false, true, false},
		{"string true", "true", false, true},
		{"string garbage uses default", "not-a-bool", false, false},
		{"number uses default", float64(1), false, false},
		{"nil uses default", nil, true, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ToBoolOr(c.in, c.def); got != c.want {
				t.Errorf("ToBoolOr(%v, %v) = %v, want %v", c.in, c.def, got, c.want)
			}
		})
	}
}
