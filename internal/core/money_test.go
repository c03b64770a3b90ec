package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"157000", 157000, true},
		{"157.000", 157000, true},
		{"2.541.000", 2541000, true},
		{"10.000 đ", 10000, true},
		{" 10000VND ", 10000, true},
		{"10,0", 10, true},
		{"1.5", 0, false},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Minor != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Minor, err)
			}
		} else if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("%q expected ErrInvalidAmount, got %v", tc.in, err)
		}
	}
}

func TestFormatVND(t *testing.T) {
	cases := map[int64]string{
		0:       "0 đ",
		999:     "999 đ",
		10000:   "10.000 đ",
		167000:  "167.000 đ",
		2541000: "2.541.000 đ",
		-1500:   "-1.500 đ",
	}
	for in, want := range cases {
		if got := FormatVND(in); got != want {
			t.Fatalf("FormatVND(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Minor: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Minor: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}
