package sms

import (
	"strings"
	"testing"
)

func TestOTPMessageContainsCode(t *testing.T) {
	msg := OTPMessage("482913")
	if !strings.Contains(msg, "482913") {
		t.Fatalf("message does not contain the code: %q", msg)
	}
}

func TestSendDevModeWithoutKey(t *testing.T) {
	g := &Gateway{}
	// no API key means dev mode: log only, never error
	if err := g.Send("9876543210", "hello"); err != nil {
		t.Fatalf("dev-mode send: %v", err)
	}
}
