package introspect

import (
	"strconv"
	"strings"
)

// BuiltinKind enumerates the closed set of ROS1 primitive wire types.
// Other denotes a user-defined (non-builtin) message type.
type BuiltinKind int

const (
	Other BuiltinKind = iota
	Bool
	Byte
	Char
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Time
	Duration
	String
)

func (k BuiltinKind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Byte:
		return "byte"
	case Char:
		return "char"
	case Uint8:
		return "uint8"
	case Uint16:
		return "uint16"
	case Uint32:
		return "uint32"
	case Uint64:
		return "uint64"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Time:
		return "time"
	case Duration:
		return "duration"
	case String:
		return "string"
	default:
		return "other"
	}
}

// builtinKinds maps the lowercase token used in an IDL field declaration to
// its BuiltinKind. "byte" and "char" are the deprecated ROS1 aliases for
// int8/uint8; they keep their own wire width (1 byte) and Variant kind
// rather than being silently folded into int8/uint8, so a round-tripped
// schema still reports the declared kind.
var builtinKinds = map[string]BuiltinKind{
	"bool":     Bool,
	"byte":     Byte,
	"char":     Char,
	"uint8":    Uint8,
	"uint16":   Uint16,
	"uint32":   Uint32,
	"uint64":   Uint64,
	"int8":     Int8,
	"int16":    Int16,
	"int32":    Int32,
	"int64":    Int64,
	"float32":  Float32,
	"float64":  Float64,
	"time":     Time,
	"duration": Duration,
	"string":   String,
}

// builtinWidth returns the fixed wire width, in bytes, of a builtin kind.
// STRING has no fixed width (it is length-prefixed) and returns 0.
func builtinWidth(k BuiltinKind) int {
	switch k {
	case Bool, Byte, Char, Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Float32:
		return 4
	case Uint64, Int64, Float64, Time, Duration:
		return 8
	default:
		return 0
	}
}

func isRawByteKind(k BuiltinKind) bool {
	return k == Uint8 || k == Int8 || k == Byte || k == Char
}

func isIntegerKind(k BuiltinKind) bool {
	switch k {
	case Bool, Byte, Char, Uint8, Uint16, Uint32, Uint64, Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

func isFloatKind(k BuiltinKind) bool {
	return k == Float32 || k == Float64
}

// ArrayKind describes whether a field is a scalar, a fixed-length array, or
// a dynamically-sized array.
type ArrayKind int

const (
	ArrayNone ArrayKind = iota
	ArrayFixed
	ArrayDynamic
)

// ROSType is the canonical identity of a field's declared type: a
// (package, name) pair for user types, or a BuiltinKind for primitives.
// Two ROSTypes are equal iff their canonical "package/name" strings match;
// array-ness is tracked separately on ROSField and never affects equality.
type ROSType struct {
	Package   string
	Name      string
	IsBuiltin bool
	Builtin   BuiltinKind
}

// ParseROSType parses a single type token such as "float64[9]",
// "JointState[]", "geometry_msgs/Point" or "uint8" into its base type and
// array shape. It does not resolve unqualified user-type packages; that is
// the IDL parser's job (it depends on which block the token appeared in).
func ParseROSType(token string) (t ROSType, arr ArrayKind, arrLen int, err error) {
	base := token
	arr = ArrayNone
	arrLen = 0

	if open := strings.IndexByte(token, '['); open >= 0 {
		close := strings.IndexByte(token, ']')
		if close < open {
			return ROSType{}, ArrayNone, 0, &DefinitionParseError{Reason: "malformed array suffix in type " + token}
		}
		base = token[:open]
		inner := token[open+1 : close]
		if inner == "" {
			arr = ArrayDynamic
		} else {
			n, convErr := strconv.Atoi(inner)
			if convErr != nil || n < 0 {
				return ROSType{}, ArrayNone, 0, &DefinitionParseError{Reason: "invalid fixed array length in type " + token}
			}
			arr = ArrayFixed
			arrLen = n
		}
	}

	if kind, ok := builtinKinds[base]; ok {
		return ROSType{IsBuiltin: true, Builtin: kind, Name: base}, arr, arrLen, nil
	}

	if idx := strings.IndexByte(base, '/'); idx >= 0 {
		return ROSType{Package: base[:idx], Name: base[idx+1:]}, arr, arrLen, nil
	}

	if base == "Header" {
		return ROSType{Package: "std_msgs", Name: "Header"}, arr, arrLen, nil
	}

	// Unqualified, unknown package: caller (the IDL parser) must resolve
	// this against the enclosing block's package.
	return ROSType{Package: "", Name: base}, arr, arrLen, nil
}

// Equal reports whether two ROSTypes denote the same type, ignoring any
// array-ness (which is not part of ROSType in this implementation).
func (t ROSType) Equal(o ROSType) bool {
	if t.IsBuiltin != o.IsBuiltin {
		return false
	}
	if t.IsBuiltin {
		return t.Builtin == o.Builtin
	}
	return t.String() == o.String()
}

// String returns the canonical "package/Name" form used as a map key
// throughout the schema registry. Builtins print their bare kind name.
func (t ROSType) String() string {
	if t.IsBuiltin {
		return t.Builtin.String()
	}
	if t.Package == "" {
		return t.Name
	}
	return t.Package + "/" + t.Name
}
