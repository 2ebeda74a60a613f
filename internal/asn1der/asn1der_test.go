package asn1der

import (
	"bytes"
	"testing"
)

func TestIntegerMinimality(t *testing.T) {
	cases := []struct {
		v    uint64
		want []byte
	}{
		{255, []byte{0x02, 0x02, 0x00, 0xFF}},
		{127, []byte{0x02, 0x01, 0x7F}},
		{0, []byte{0x02, 0x01, 0x00}},
	}
	for _, c := range cases {
		s := NewSeq()
		s.AddInteger(c.v)
		got := s.body
		if !bytes.Equal(got, c.want) {
			t.Errorf("AddInteger(%d) = % X, want % X", c.v, got, c.want)
		}
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 255, 65537, 0xFFFFFFFF, 0xFFFFFFFFFFFFFFFF}
	for _, v := range values {
		s := NewSeq()
		s.AddInteger(v)
		full := s.body

		entry, err := NextEntry(full, 0)
		if err != nil {
			t.Fatalf("value %d: NextEntry: %v", v, err)
		}
		got, err := IntegerToU64(entry.Data)
		if err != nil {
			t.Fatalf("value %d: IntegerToU64: %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d -> % X -> %d", v, full, got)
		}
	}
}

func TestSequenceNesting(t *testing.T) {
	inner := NewSeq()
	inner.AddInteger(1)
	inner.AddInteger(2)

	outer := NewSeq()
	outer.AddSeq(inner)
	data := outer.Finish()

	top, err := NextEntry(data, 0)
	if err != nil {
		t.Fatal(err)
	}
	if top.Tag != TagSequence {
		t.Fatalf("top tag = %#x, want SEQUENCE", top.Tag)
	}

	child, err := NextEntry(data, SeqFirstEntry(top))
	if err != nil {
		t.Fatal(err)
	}
	if child.Tag != TagSequence {
		t.Fatalf("child tag = %#x, want SEQUENCE", child.Tag)
	}

	first, err := NextEntry(data, SeqFirstEntry(child))
	if err != nil {
		t.Fatal(err)
	}
	v, err := IntegerToU64(first.Data)
	if err != nil || v != 1 {
		t.Errorf("first integer = %d, err %v, want 1", v, err)
	}

	second, err := NextEntry(data, NextEntryOffset(first))
	if err != nil {
		t.Fatal(err)
	}
	v2, err := IntegerToU64(second.Data)
	if err != nil || v2 != 2 {
		t.Errorf("second integer = %d, err %v, want 2", v2, err)
	}
}

func TestLongFormLength(t *testing.T) {
	data := make([]byte, 0x81)
	data[0] = TagOctetString
	data[1] = 0x81 // long form, 1 length byte follows
	data[2] = 0x80 // length = 128
	// not actually 128 bytes of payload appended; construct exact size
	payload := make([]byte, 128)
	full := append([]byte{TagOctetString, 0x81, 0x80}, payload...)

	e, err := NextEntry(full, 0)
	if err != nil {
		t.Fatal(err)
	}
	if e.DataLen != 128 {
		t.Errorf("DataLen = %d, want 128", e.DataLen)
	}
}

func TestIndefiniteLengthRejected(t *testing.T) {
	data := []byte{TagOctetString, 0x80}
	if _, err := NextEntry(data, 0); err == nil {
		t.Error("expected error for indefinite length")
	}
}

func TestTruncatedInputRejected(t *testing.T) {
	data := []byte{TagInteger, 0x05, 0x01, 0x02}
	if _, err := NextEntry(data, 0); err == nil {
		t.Error("expected error for truncated entry data")
	}
}

func TestBitStrSeqUnusedBitsByte(t *testing.T) {
	inner := NewSeq()
	inner.AddInteger(42)

	outer := NewSeq()
	outer.AddBitStrSeq(inner)
	data := outer.body

	e, err := NextEntry(data, 0)
	if err != nil {
		t.Fatal(err)
	}
	if e.Tag != TagBitString {
		t.Fatalf("tag = %#x, want BIT STRING", e.Tag)
	}
	if e.Data[0] != 0x00 {
		t.Errorf("unused-bits byte = %#x, want 0x00", e.Data[0])
	}
}
