package introspect

import "testing"

func TestVariant_IntRoundTrip(t *testing.T) {
	v := NewIntVariant(Int16, -1234)
	widened, err := v.Convert(Int64)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	narrowed, err := widened.Convert(Int16)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if narrowed.Int64() != -1234 {
		t.Fatalf("round trip failed, got %d", narrowed.Int64())
	}
}

func TestVariant_NarrowingOutOfRangeFails(t *testing.T) {
	v := NewIntVariant(Int32, 70000)
	if _, err := v.Convert(Int16); err == nil {
		t.Fatalf("expected out-of-range error")
	} else if _, ok := err.(*ConversionOutOfRangeError); !ok {
		t.Fatalf("expected ConversionOutOfRangeError, got %T", err)
	}
}

func TestVariant_UnsignedOverflowFails(t *testing.T) {
	v := NewUintVariant(Uint32, 300)
	if _, err := v.Convert(Uint8); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestVariant_IntToFloatNoRangeCheck(t *testing.T) {
	v := NewIntVariant(Int32, -5)
	f, err := v.Convert(Float64)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if f.Float64() != -5.0 {
		t.Fatalf("expected -5.0, got %v", f.Float64())
	}
}

func TestVariant_FloatToIntTruncates(t *testing.T) {
	v := NewFloatVariant(Float64, 9.9)
	i, err := v.Convert(Int32)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if i.Int64() != 9 {
		t.Fatalf("expected truncation to 9, got %d", i.Int64())
	}

	neg := NewFloatVariant(Float64, -9.9)
	i2, err := neg.Convert(Int32)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if i2.Int64() != -9 {
		t.Fatalf("expected truncation to -9, got %d", i2.Int64())
	}
}

func TestVariant_TimeToFloat(t *testing.T) {
	v := NewTimeVariant(Time, 1234, 567000000)
	f, err := v.Convert(Float64)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if f.Float64() != 1234.567 {
		t.Fatalf("expected 1234.567, got %v", f.Float64())
	}
}

func TestVariant_FloatToTime(t *testing.T) {
	v := NewFloatVariant(Float64, 1234.567)
	tm, err := v.Convert(Time)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	sec, nsec := tm.SecNsec()
	if sec != 1234 {
		t.Fatalf("expected sec=1234, got %d", sec)
	}
	if nsec < 566999000 || nsec > 567001000 {
		t.Fatalf("expected nsec close to 567000000, got %d", nsec)
	}
}

func TestVariant_FloatToTimeNegativeFails(t *testing.T) {
	v := NewFloatVariant(Float64, -1.0)
	if _, err := v.Convert(Time); err == nil {
		t.Fatalf("expected error converting negative float to TIME")
	}
}

func TestVariant_TimeRoundTripThroughDouble(t *testing.T) {
	orig := NewTimeVariant(Duration, 42, 123)
	f, err := orig.Convert(Float64)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	back, err := f.Convert(Duration)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	sec, nsec := back.SecNsec()
	if sec != 42 {
		t.Fatalf("expected sec=42, got %d", sec)
	}
	if nsec != 123 {
		t.Fatalf("expected nsec=123, got %d", nsec)
	}
}

func TestVariant_BoolIsUintLike(t *testing.T) {
	v := NewUintVariant(Bool, 1)
	i, err := v.Convert(Int32)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if i.Int64() != 1 {
		t.Fatalf("expected 1, got %d", i.Int64())
	}
}
