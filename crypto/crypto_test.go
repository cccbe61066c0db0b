package crypto

import (
	"bytes"
	"testing"
)

func TestDigest(t *testing.T) {
	d1 := Digest([]byte("some data"))
	d2 := Digest([]byte("some data"))
	if len(d1) != HashSizeByte {
		t.Fatal("Digest should be", HashSizeByte, "bytes, got", len(d1))
	}
	if !bytes.Equal(d1, d2) {
		t.Error("Digest of equal input differs")
	}
	if bytes.Equal(d1, Digest([]byte("some datb"))) {
		t.Error("Digest of different input collides")
	}
}

func TestDigestEmpty(t *testing.T) {
	d := Digest()
	if len(d) != HashSizeByte {
		t.Fatal("Digest of zero bytes should still be", HashSizeByte, "bytes")
	}
	if !bytes.Equal(d, Digest([]byte{})) {
		t.Error("Digest() and Digest(empty slice) should agree")
	}
}

func TestMakeRand(t *testing.T) {
	r1, err := MakeRand()
	if err != nil {
		t.Fatal(err)
	}
	r2, err := MakeRand()
	if err != nil {
		t.Fatal(err)
	}
	if len(r1) != HashSizeByte {
		t.Fatal("Expected a random slice of", HashSizeByte, "bytes")
	}
	if bytes.Equal(r1, r2) {
		t.Error("Two random slices are equal")
	}
}
