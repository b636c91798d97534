package labour

import (
	"strings"
	"testing"
	"time"
)

func TestCardPayloadRoundTrip(t *testing.T) {
	issued := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	payload := CardQRPayload("c123", "l456", issued)

	cardID, labourID, ok := VerifyCardPayload(payload)
	if !ok {
		t.Fatal("genuine payload failed verification")
	}
	if cardID != "c123" || labourID != "l456" {
		t.Fatalf("got cardID=%q labourID=%q", cardID, labourID)
	}
}

func TestCardPayloadTamperDetection(t *testing.T) {
	payload := CardQRPayload("c123", "l456", time.Now())

	tampered := strings.Replace(payload, "l456", "l999", 1)
	if _, _, ok := VerifyCardPayload(tampered); ok {
		t.Fatal("tampered payload passed verification")
	}
}

func TestCardPayloadGarbage(t *testing.T) {
	for _, p := range []string{"", "abc", "a|b|c", "a|b|c|notbase64=="} {
		if _, _, ok := VerifyCardPayload(p); ok {
			t.Fatalf("garbage payload %q passed verification", p)
		}
	}
}
