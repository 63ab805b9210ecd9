package richvalue

import (
	"math/big"
	"testing"
	"time"
)

func roundTrip[T comparable](t *testing.T, in T) T {
	t.Helper()
	rv, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out T
	if err := Decode(rv, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestScalarRoundTrip(t *testing.T) {
	if got := roundTrip(t, "hello"); got != "hello" {
		t.Fatalf("string round trip: %q", got)
	}
	if got := roundTrip(t, int32(-42)); got != -42 {
		t.Fatalf("int32 round trip: %d", got)
	}
	if got := roundTrip(t, int64(1<<40)); got != 1<<40 {
		t.Fatalf("int64 round trip: %d", got)
	}
	if got := roundTrip(t, true); !got {
		t.Fatalf("bool round trip failed")
	}
	if got := roundTrip(t, 3.5); got != 3.5 {
		t.Fatalf("float round trip: %v", got)
	}
}

func TestBytesRoundTrip(t *testing.T) {
	in := []byte{0xde, 0xad, 0xbe, 0xef}
	rv, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out []byte
	if err := Decode(rv, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(out) != string(in) {
		t.Fatalf("bytes round trip: %x != %x", out, in)
	}
}

func TestBigIntRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "-1", "123456789012345678901234567890", "-123456789012345678901234567890"} {
		want, _ := new(big.Int).SetString(s, 10)
		rv, err := Encode(NewBigIntFromBig(want))
		if err != nil {
			t.Fatalf("encode %s: %v", s, err)
		}
		var got BigInt
		if err := Decode(rv, &got); err != nil {
			t.Fatalf("decode %s: %v", s, err)
		}
		if got.Big().Cmp(want) != 0 {
			t.Fatalf("big-int round trip mismatch: want %s got %s", want, got.Big())
		}
	}
}

func TestBigDecimalRoundTrip(t *testing.T) {
	mantissa, _ := new(big.Int).SetString("-123456789012345678901234567890123", 10)
	want := BigDecimal{Mantissa: NewBigIntFromBig(mantissa), Exponent: -3}

	rv, err := Encode(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got BigDecimal
	if err := Decode(rv, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Exponent != want.Exponent || got.Mantissa.Big().Cmp(want.Mantissa.Big()) != 0 {
		t.Fatalf("big-decimal round trip mismatch: want %+v got %+v", want, got)
	}

	wantDec := want.Decimal()
	gotDec := got.Decimal()
	if !wantDec.Equal(gotDec) {
		t.Fatalf("decimal value mismatch: want %s got %s", wantDec, gotDec)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	in := time.Date(2026, 7, 31, 12, 0, 0, 123000, time.UTC)
	rv, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out time.Time
	if err := Decode(rv, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("timestamp round trip: want %v got %v", in, out)
	}
}

func TestListRoundTrip(t *testing.T) {
	in := []string{"a", "b", "c"}
	rv, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out []string
	if err := Decode(rv, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("list length mismatch: %v != %v", out, in)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("list element %d mismatch: %v != %v", i, out[i], in[i])
		}
	}
}

type sampleStruct struct {
	Name  string
	Count int64
}

func TestStructRoundTrip(t *testing.T) {
	in := sampleStruct{Name: "acct", Count: 7}
	st, err := EncodeStruct(in)
	if err != nil {
		t.Fatalf("encode struct: %v", err)
	}
	rv, err := Encode(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out sampleStruct
	if err := Decode(rv, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != in {
		t.Fatalf("struct round trip: want %+v got %+v", in, out)
	}
	if len(st.Fields) != 2 {
		t.Fatalf("expected 2 struct fields, got %d", len(st.Fields))
	}
}

func TestMapRequiresStringKeys(t *testing.T) {
	if _, err := Encode(map[int]string{1: "a"}); err == nil {
		t.Fatalf("expected error for non-string map key")
	}
}

func TestDecodeNarrowingFails(t *testing.T) {
	rv, err := Encode(int64(1 << 40))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out int32
	if err := Decode(rv, &out); err == nil {
		t.Fatalf("expected narrowing decode to fail")
	}
}

func TestDecodeWideningSucceeds(t *testing.T) {
	rv, err := Encode(int32(42))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out int64
	if err := Decode(rv, &out); err != nil {
		t.Fatalf("widening decode failed: %v", err)
	}
	if out != 42 {
		t.Fatalf("widening decode mismatch: %d", out)
	}
}

func TestOptionNoneMapsToNull(t *testing.T) {
	var p *string
	rv, err := Encode(p)
	if err != nil {
		t.Fatalf("encode nil pointer: %v", err)
	}
	var out *string
	if err := Decode(rv, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out != nil {
		t.Fatalf("expected nil pointer after decoding null, got %v", *out)
	}
}
