package jobs

import (
	"testing"

	"majdoorsathi/models"
)

func TestFindApplication(t *testing.T) {
	apps := []models.Application{
		{ApplicationID: "a111", ApplicantID: "u1"},
		{ApplicationID: "a222", ApplicantID: "u2"},
	}

	got := FindApplication(apps, "a222")
	if got == nil || got.ApplicantID != "u2" {
		t.Fatalf("expected application a222 for u2, got %+v", got)
	}

	if FindApplication(apps, "missing") != nil {
		t.Fatal("expected nil for unknown application ID")
	}
	if FindApplication(nil, "a111") != nil {
		t.Fatal("expected nil for empty application list")
	}
}

func TestCanDecide(t *testing.T) {
	cases := []struct {
		current, decision string
		want              bool
	}{
		{models.ApplicationPending, models.ApplicationAccepted, true},
		{models.ApplicationPending, models.ApplicationRejected, true},
		// repeating a decision is idempotent
		{models.ApplicationAccepted, models.ApplicationAccepted, true},
		{models.ApplicationRejected, models.ApplicationRejected, true},
		// a decided application cannot flip
		{models.ApplicationAccepted, models.ApplicationRejected, false},
		{models.ApplicationRejected, models.ApplicationAccepted, false},
	}
	for _, c := range cases {
		if got := CanDecide(c.current, c.decision); got != c.want {
			t.Fatalf("CanDecide(%s, %s) = %v, want %v", c.current, c.decision, got, c.want)
		}
	}
}

func TestHasApplied(t *testing.T) {
	apps := []models.Application{
		{ApplicationID: "a111", ApplicantID: "u1", Status: models.ApplicationRejected},
	}

	// a prior application counts regardless of its status
	if !HasApplied(apps, "u1") {
		t.Fatal("expected u1 to count as applied")
	}
	if HasApplied(apps, "u2") {
		t.Fatal("u2 never applied")
	}
}
