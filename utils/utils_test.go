package utils

import "testing"

func TestIsValidMobile(t *testing.T) {
	valid := []string{"9876543210", "6000000000", "7123456789", "8999999999"}
	for _, num := range valid {
		if !IsValidMobile(num) {
			t.Errorf("expected %q to be valid", num)
		}
	}

	invalid := []string{"", "12345", "5876543210", "98765432101", "987654321", "98765a3210", "+919876543210"}
	for _, num := range invalid {
		if IsValidMobile(num) {
			t.Errorf("expected %q to be invalid", num)
		}
	}
}

func TestGenerateRandomDigitString(t *testing.T) {
	s := GenerateRandomDigitString(6)
	if len(s) != 6 {
		t.Fatalf("expected 6 digits, got %q", s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit %q in %q", r, s)
		}
	}
}

func TestSplitTags(t *testing.T) {
	got := SplitTags("Mason, plumber ,MASON,, electrician")
	want := []string{"mason", "plumber", "electrician"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if len(SplitTags("")) != 0 {
		t.Fatal("empty input should yield no tags")
	}
}
