package mpi

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestBytesRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	for i := 0; i < 200; i++ {
		buf := make([]byte, r.Intn(64)+1)
		r.Read(buf)

		x := NewInt().SetBytes(buf)
		out := x.Bytes()

		trimmed := buf
		for len(trimmed) > 0 && trimmed[0] == 0 {
			trimmed = trimmed[1:]
		}
		if !bytes.Equal(out, trimmed) {
			t.Fatalf("round trip mismatch: in=%x out=%x", buf, out)
		}
	}
}

func TestFillBytesTooSmall(t *testing.T) {
	x := NewInt().SetInt64(1 << 20)
	buf := make([]byte, 1)
	if err := x.FillBytes(buf); err == nil {
		t.Errorf("FillBytes should fail on a too-small buffer")
	}
}

func TestFillBytesPadsLeft(t *testing.T) {
	x := NewInt().SetInt64(1)
	buf := make([]byte, 4)
	if err := x.FillBytes(buf); err != nil {
		t.Fatalf("FillBytes: %v", err)
	}
	want := []byte{0, 0, 0, 1}
	if !bytes.Equal(buf, want) {
		t.Errorf("FillBytes(4) = %x, want %x", buf, want)
	}
}

func TestStringRoundTripRadices(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	for _, radix := range []int{2, 8, 10, 16} {
		for i := 0; i < 50; i++ {
			x := randomSignedInt(r, 4)
			s, err := x.String16(radix)
			if err != nil {
				t.Fatalf("String16(%d): %v", radix, err)
			}
			back := NewInt()
			if err := back.SetString(s, radix); err != nil {
				t.Fatalf("SetString(%q, %d): %v", s, radix, err)
			}
			if back.Cmp(x) != 0 {
				t.Fatalf("round trip failed for radix %d: %v -> %q -> %v", radix, x, s, back)
			}
		}
	}
}

func TestSetStringInvalidCharacter(t *testing.T) {
	x := NewInt()
	if err := x.SetString("12g", 16); err == nil {
		t.Errorf("SetString should reject 'g' in hex")
	}
	if err := x.SetString("129", 8); err == nil {
		t.Errorf("SetString should reject '9' in octal")
	}
}

func TestSetStringBadRadix(t *testing.T) {
	x := NewInt()
	if err := x.SetString("1", 1); err == nil {
		t.Errorf("SetString should reject radix 1")
	}
	if err := x.SetString("1", 17); err == nil {
		t.Errorf("SetString should reject radix 17")
	}
}

func TestZeroStringIsZero(t *testing.T) {
	x := NewInt()
	s, err := x.String16(16)
	if err != nil {
		t.Fatalf("String16: %v", err)
	}
	if s != "0" {
		t.Errorf("zero should render as %q, got %q", "0", s)
	}
}
