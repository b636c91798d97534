package models

import "testing"

func TestPairKeyForIsOrderIndependent(t *testing.T) {
	a := PairKeyFor("u_alice", "u_bob")
	b := PairKeyFor("u_bob", "u_alice")
	if a != b {
		t.Fatalf("pair key depends on order: %q vs %q", a, b)
	}
	if a != "u_alice|u_bob" {
		t.Fatalf("unexpected pair key %q", a)
	}
}

func TestPairKeyForDistinctPairs(t *testing.T) {
	if PairKeyFor("u_a", "u_b") == PairKeyFor("u_a", "u_c") {
		t.Fatal("different pairs produced the same key")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(HirePending) {
		t.Fatal("pending must not be terminal")
	}
	if !IsTerminal(HireAccepted) || !IsTerminal(HireDeclined) {
		t.Fatal("accepted and declined must be terminal")
	}
}
