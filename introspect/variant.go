package introspect

import "math"

// Variant is a tagged union over every numeric builtin kind, plus TIME and
// DURATION. It always stores its value widened to either int64, uint64 or
// float64 depending on the signedness/floatness of Kind, so Convert never
// has to branch on storage width -- only on Kind.
type Variant struct {
	Kind BuiltinKind
	i    int64
	u    uint64
	f    float64
}

// NewIntVariant builds a Variant holding a signed integer kind (Int8/16/32/64).
func NewIntVariant(kind BuiltinKind, v int64) Variant {
	return Variant{Kind: kind, i: v}
}

// NewUintVariant builds a Variant holding an unsigned integer kind (Uint8/16/
// 32/64, Byte, Char or Bool).
func NewUintVariant(kind BuiltinKind, v uint64) Variant {
	return Variant{Kind: kind, u: v}
}

// NewFloatVariant builds a Variant holding Float32 or Float64.
func NewFloatVariant(kind BuiltinKind, v float64) Variant {
	return Variant{Kind: kind, f: v}
}

// NewTimeVariant builds a Variant holding Time or Duration, stored as a
// (sec, nsec) pair widened into the int64 slot as sec and the uint64 slot
// as nsec -- kept separate so TIME<->TIME round-trips never lose precision
// through a float64 intermediate.
func NewTimeVariant(kind BuiltinKind, sec int64, nsec int64) Variant {
	return Variant{Kind: kind, i: sec, u: uint64(nsec)}
}

func isUnsignedKind(k BuiltinKind) bool {
	switch k {
	case Bool, Byte, Char, Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

func isSignedKind(k BuiltinKind) bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

func isTimeKind(k BuiltinKind) bool {
	return k == Time || k == Duration
}

// Int64 returns the value as a signed int64, valid for integer and bool
// kinds only.
func (v Variant) Int64() int64 {
	if isUnsignedKind(v.Kind) {
		return int64(v.u)
	}
	return v.i
}

// Uint64 returns the value as an unsigned uint64, valid for integer and bool
// kinds only.
func (v Variant) Uint64() uint64 {
	if isUnsignedKind(v.Kind) {
		return v.u
	}
	return uint64(v.i)
}

// Float64 returns the value as a float64, valid for float kinds only.
func (v Variant) Float64() float64 {
	return v.f
}

// SecNsec returns the (seconds, nanoseconds) pair, valid for Time/Duration
// kinds only.
func (v Variant) SecNsec() (sec int64, nsec int64) {
	return v.i, int64(v.u)
}

func intBounds(k BuiltinKind) (lo int64, hi int64, unsigned bool) {
	switch k {
	case Bool:
		return 0, 1, true
	case Byte, Uint8:
		return 0, math.MaxUint8, true
	case Char, Int8:
		return math.MinInt8, math.MaxInt8, false
	case Uint16:
		return 0, math.MaxUint16, true
	case Int16:
		return math.MinInt16, math.MaxInt16, false
	case Uint32:
		return 0, math.MaxUint32, true
	case Int32:
		return math.MinInt32, math.MaxInt32, false
	case Uint64:
		return 0, math.MaxInt64, true // upper bound checked separately below
	case Int64:
		return math.MinInt64, math.MaxInt64, false
	default:
		return 0, 0, false
	}
}

// Convert produces a new Variant of kind `target`, applying the rules from
// §3: narrowing integer conversions fail out of range; integer<->float casts
// truncate C-style with no range check except for TIME; TIME<->float64 uses
// sec + nsec*1e-9; float->TIME requires a non-negative finite value.
func (v Variant) Convert(target BuiltinKind) (Variant, error) {
	switch {
	case isIntegerKind(v.Kind) && isIntegerKind(target):
		return v.convertIntToInt(target)
	case isIntegerKind(v.Kind) && isFloatKind(target):
		var f float64
		if isUnsignedKind(v.Kind) {
			f = float64(v.u)
		} else {
			f = float64(v.i)
		}
		return Variant{Kind: target, f: f}, nil
	case isFloatKind(v.Kind) && isIntegerKind(target):
		return v.convertFloatToInt(target)
	case isFloatKind(v.Kind) && isFloatKind(target):
		return Variant{Kind: target, f: v.f}, nil
	case isTimeKind(v.Kind) && isFloatKind(target):
		sec, nsec := v.SecNsec()
		return Variant{Kind: target, f: float64(sec) + float64(nsec)*1e-9}, nil
	case isFloatKind(v.Kind) && isTimeKind(target):
		return v.convertFloatToTime(target)
	case isTimeKind(v.Kind) && isTimeKind(target):
		sec, nsec := v.SecNsec()
		return Variant{Kind: target, i: sec, u: uint64(nsec)}, nil
	default:
		return Variant{}, &ConversionOutOfRangeError{From: v.Kind, To: target}
	}
}

func (v Variant) convertIntToInt(target BuiltinKind) (Variant, error) {
	lo, hi, unsigned := intBounds(target)
	if isUnsignedKind(v.Kind) {
		val := v.u
		if target == Uint64 {
			return Variant{Kind: target, u: val}, nil
		}
		if val > uint64(hi) {
			return Variant{}, &ConversionOutOfRangeError{From: v.Kind, To: target}
		}
		if unsigned {
			return Variant{Kind: target, u: val}, nil
		}
		return Variant{Kind: target, i: int64(val)}, nil
	}

	val := v.i
	if val < lo || (hi >= 0 && val > hi) {
		return Variant{}, &ConversionOutOfRangeError{From: v.Kind, To: target}
	}
	if unsigned {
		return Variant{Kind: target, u: uint64(val)}, nil
	}
	return Variant{Kind: target, i: val}, nil
}

func (v Variant) convertFloatToInt(target BuiltinKind) (Variant, error) {
	if isTimeKind(target) {
		return v.convertFloatToTime(target)
	}
	// Non-TIME numeric casts truncate C-style with no range check.
	truncated := math.Trunc(v.f)
	_, _, unsigned := intBounds(target)
	if unsigned {
		return Variant{Kind: target, u: uint64(int64(truncated))}, nil
	}
	return Variant{Kind: target, i: int64(truncated)}, nil
}

func (v Variant) convertFloatToTime(target BuiltinKind) (Variant, error) {
	x := v.f
	if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
		return Variant{}, &ConversionOutOfRangeError{From: v.Kind, To: target}
	}
	sec := math.Floor(x)
	nsec := math.Round((x - sec) * 1e9)
	if nsec >= 1e9 {
		nsec -= 1e9
		sec++
	}
	if nsec < 0 {
		nsec = 0
	}
	return Variant{Kind: target, i: int64(sec), u: uint64(int64(nsec))}, nil
}
