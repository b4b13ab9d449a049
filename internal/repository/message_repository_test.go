package repository

import "testing"

func TestPairKeyIsOrderIndependent(t *testing.T) {
	a := PairKey("alice", "bob")
	b := PairKey("bob", "alice")

	if a != b {
		t.Fatalf("PairKey not symmetric: %q vs %q", a, b)
	}
	if a != "alice:bob" {
		t.Fatalf("PairKey = %q, want alice:bob", a)
	}
}

func TestPairKeyDistinguishesPairs(t *testing.T) {
	if PairKey("alice", "bob") == PairKey("alice", "carol") {
		t.Fatal("different pairs produced the same key")
	}
}
