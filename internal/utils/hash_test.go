package utils

import "testing"

func TestHashStringToUint64Stable(t *testing.T) {
	if HashStringToUint64("session:1") != HashStringToUint64("session:1") {
		t.Fatalf("hash must be stable")
	}
	if HashStringToUint64("session:1") == HashStringToUint64("session:2") {
		t.Fatalf("different inputs should hash differently")
	}
}
