package utils

import "testing"

func TestAtoiDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"42", 0, 42},
		{"", 10, 10},
		{"x", 5, 5},
		{"-3", 0, -3},
		{"3.5", 7, 7},
	}
	for _, tc := range cases {
		if got := AtoiDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("AtoiDefault(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestParseBoolDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"TRUE", false, true},
		{"1", false, true},
		{" yes ", false, true},
		{"false", true, false},
		{"off", true, false},
		{"", true, true},
		{"maybe", false, false},
	}
	for _, tc := range cases {
		if got := ParseBoolDefault(tc.in, tc.def); got != tc.want {
			t.Errorf("ParseBoolDefault(%q, %v) = %v, want %v", tc.in, tc.def, got, tc.want)
		}
	}
}
