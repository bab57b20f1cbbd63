package core

import (
	"errors"
	"testing"
)

func TestParseAmountLenient(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1000", 1000},
		{"1000.50", 1000.50},
		{" 250 ", 250},
		{"12,5", 12.5},
		{"-40", -40},
		{"", 0},
		{"abc", 0},
		{"12x", 0},
	}
	for _, c := range cases {
		if got := ParseAmount(c.in); got != c.want {
			t.Fatalf("ParseAmount(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestParseRequiredAmountStrict(t *testing.T) {
	if got, err := ParseRequiredAmount("99.9"); err != nil || got != 99.9 {
		t.Fatalf("ParseRequiredAmount valid: got %v, %v", got, err)
	}
	for _, in := range []string{"", "abc", "-1"} {
		if _, err := ParseRequiredAmount(in); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("ParseRequiredAmount(%q): want ErrInvalidAmount, got %v", in, err)
		}
	}
}

func TestValidationError(t *testing.T) {
	err := MissingFields("nickname", "city")
	if !IsValidation(err) {
		t.Fatalf("IsValidation=false for MissingFields")
	}
	if err.Error() != "missing required fields: nickname, city" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
	if IsValidation(ErrInvalidAmount) {
		t.Fatalf("IsValidation=true for unrelated error")
	}
}

func TestProjectIsActive(t *testing.T) {
	for status, want := range map[ProjectStatus]bool{
		StatusPlanning:   true,
		StatusInProgress: true,
		StatusCompleted:  false,
		StatusOnHold:     false,
	} {
		if got := (Project{Status: status}).IsActive(); got != want {
			t.Fatalf("IsActive(%s)=%v want %v", status, got, want)
		}
	}
}
