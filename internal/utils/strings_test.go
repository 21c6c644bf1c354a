package utils

import "testing"

func TestSplitSeatList(t *testing.T) {
	got := SplitSeatList(" a1, b2;;\nc3 ")
	want := []string{"A1", "B2", "C3"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestJoinSeatList(t *testing.T) {
	if got := JoinSeatList(nil); got != "None" {
		t.Fatalf("empty list rendered %q", got)
	}
	if got := JoinSeatList([]string{"A1", "A2"}); got != "A1, A2" {
		t.Fatalf("got %q", got)
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if FormatDate(d) != "2024-06-01" {
		t.Fatalf("unexpected date %s", FormatDate(d))
	}
	if _, err := ParseDate("01/06/2024"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}
