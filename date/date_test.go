package date

import (
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse(2025-7-1) = %v", err)
	}
	if d.String() != "2025-07-01" {
		t.Errorf("Parse(2025-7-1).String() = %q, want 2025-07-01", d.String())
	}

	if _, err := Parse("not-a-date"); err == nil {
		t.Error("Parse(not-a-date) should fail")
	}
}

func TestAddNormalizes(t *testing.T) {
	d := New(2025, time.June, 30).Add(1)
	if d != New(2025, time.July, 1) {
		t.Errorf("June 30 + 1 day = %v, want 2025-07-01", d)
	}
}

func TestRangeDays(t *testing.T) {
	r := NewRange(New(2025, 6, 27), New(2025, 6, 30))
	var got []Date
	for d := range r.Days() {
		got = append(got, d)
	}
	if len(got) != 4 {
		t.Fatalf("Days() yielded %d days, want 4", len(got))
	}
	if got[0] != r.From || got[3] != r.To {
		t.Errorf("Days() bounds = %v..%v, want %v..%v", got[0], got[3], r.From, r.To)
	}
	if !r.Contains(New(2025, 6, 28)) || r.Contains(New(2025, 7, 1)) {
		t.Error("Contains() misclassifies days")
	}
}
