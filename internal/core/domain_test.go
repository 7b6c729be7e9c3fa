package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-05")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != 3 || d.Day() != 5 {
		t.Fatalf("unexpected components: %d-%d-%d", d.Year(), d.Month(), d.Day())
	}

	bads := []string{"", "2024-13-01", "05/03/2024", "2024-02-30", "not-a-date"}
	for i, s := range bads {
		if _, err := ParseDate(s); err == nil {
			t.Fatalf("case %d expected error for %q", i, s)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 2, 29)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-02-29"` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("roundtrip mismatch: %v != %v", back, d)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Date:        NewDate(2024, 3, 5),
		Hour:        9,
		Amount:      Money{Cents: 5000},
		Description: "Coffee",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name  string
		e     Expense
		field string
	}{
		{"zero date", Expense{Hour: 9, Amount: Money{Cents: 1}, Description: "a"}, "date"},
		{"hour below range", Expense{Date: NewDate(2024, 3, 5), Hour: -1, Amount: Money{Cents: 1}, Description: "a"}, "hour"},
		{"hour above range", Expense{Date: NewDate(2024, 3, 5), Hour: 24, Amount: Money{Cents: 1}, Description: "a"}, "hour"},
		{"blank description", Expense{Date: NewDate(2024, 3, 5), Hour: 0, Amount: Money{Cents: 1}, Description: "   "}, "description"},
		{"zero amount", Expense{Date: NewDate(2024, 3, 5), Hour: 0, Description: "a"}, "amount"},
		{"negative amount", Expense{Date: NewDate(2024, 3, 5), Hour: 0, Amount: Money{Cents: -5}, Description: "a"}, "amount"},
	}
	for _, tc := range cases {
		err := tc.e.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %T", tc.name, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q", tc.name, tc.field, verr.Field)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Coffee", "coffee"},
		{"  Lunch  ", "lunch"},
		{"LUNCH", "lunch"},
		{"", ""},
	}
	for i, tc := range cases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Fatalf("case %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestFindExpense(t *testing.T) {
	u := &User{Expenses: []Expense{{ID: "a"}, {ID: "b"}}}
	if idx := u.FindExpense("b"); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if idx := u.FindExpense("missing"); idx != -1 {
		t.Fatalf("expected -1, got %d", idx)
	}
}
