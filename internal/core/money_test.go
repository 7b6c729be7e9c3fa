package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12", 1200, true},
		{"0.5", 50, true},
		{".5", 50, true},
		{"12.345", 1234, true}, // rounds down
		{"12.346", 1235, true}, // rounds up
		{"0", 0, false},
		{"0.00", 0, false},
		{"", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"1.2.3", 0, false},
		{"abc", 0, false},
		{"12e3", 0, false},
	}
	for i, tc := range cases {
		m, err := ParseAmount(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%q): expected ok, got %v", i, tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%q): expected error", i, tc.in)
		}
		if tc.ok && m.Cents != tc.cents {
			t.Fatalf("case %d (%q): got %d cents, want %d", i, tc.in, m.Cents, tc.cents)
		}
	}
}

func TestParseSignedAmount(t *testing.T) {
	cases := []struct {
		in    string
		cents int64
		ok    bool
	}{
		{"100.50", 10050, true},
		{"-100.50", -10050, true},
		{"+3", 300, true},
		{"0", 0, true},
		{"-0", 0, true},
		{"--5", 0, false},
		{"", 0, false},
	}
	for i, tc := range cases {
		m, err := ParseSignedAmount(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%q): expected ok, got %v", i, tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%q): expected error", i, tc.in)
		}
		if tc.ok && m.Cents != tc.cents {
			t.Fatalf("case %d (%q): got %d cents, want %d", i, tc.in, m.Cents, tc.cents)
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{-25000, "-250.00"},
		{5, "0.05"},
		{0, "0.00"},
	}
	for i, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 100}
	b := Money{Cents: 250}
	if got := a.Add(b).Cents; got != 350 {
		t.Fatalf("Add: got %d", got)
	}
	if got := a.Sub(b).Cents; got != -150 {
		t.Fatalf("Sub: got %d", got)
	}
}
