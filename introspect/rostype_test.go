package introspect

import "testing"

func TestParseROSType_Builtin(t *testing.T) {
	typ, arr, arrLen, err := ParseROSType("float64")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !typ.IsBuiltin || typ.Builtin != Float64 {
		t.Fatalf("expected builtin float64, got %+v", typ)
	}
	if arr != ArrayNone || arrLen != 0 {
		t.Fatalf("expected no array, got %v %d", arr, arrLen)
	}
}

func TestParseROSType_FixedArray(t *testing.T) {
	typ, arr, arrLen, err := ParseROSType("float64[9]")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if typ.Builtin != Float64 || arr != ArrayFixed || arrLen != 9 {
		t.Fatalf("unexpected parse: %+v %v %d", typ, arr, arrLen)
	}
}

func TestParseROSType_DynamicArray(t *testing.T) {
	typ, arr, arrLen, err := ParseROSType("int16[]")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if typ.Builtin != Int16 || arr != ArrayDynamic || arrLen != 0 {
		t.Fatalf("unexpected parse: %+v %v %d", typ, arr, arrLen)
	}
}

func TestParseROSType_Qualified(t *testing.T) {
	typ, arr, _, err := ParseROSType("geometry_msgs/Point")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if typ.IsBuiltin || typ.Package != "geometry_msgs" || typ.Name != "Point" || arr != ArrayNone {
		t.Fatalf("unexpected parse: %+v %v", typ, arr)
	}
}

func TestParseROSType_HeaderShortcut(t *testing.T) {
	typ, _, _, err := ParseROSType("Header")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if typ.Package != "std_msgs" || typ.Name != "Header" {
		t.Fatalf("expected std_msgs/Header, got %+v", typ)
	}
}

func TestParseROSType_Unqualified(t *testing.T) {
	typ, _, _, err := ParseROSType("JointState")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if typ.Package != "" || typ.Name != "JointState" {
		t.Fatalf("expected unqualified JointState, got %+v", typ)
	}
}

func TestParseROSType_Malformed(t *testing.T) {
	if _, _, _, err := ParseROSType("float64]9["); err == nil {
		t.Fatalf("expected error for malformed array suffix")
	}
}

func TestROSType_String(t *testing.T) {
	tests := []struct {
		typ  ROSType
		want string
	}{
		{ROSType{IsBuiltin: true, Builtin: Uint32}, "uint32"},
		{ROSType{Package: "sensor_msgs", Name: "JointState"}, "sensor_msgs/JointState"},
		{ROSType{Name: "JointState"}, "JointState"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Fatalf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestROSType_Equal_IgnoresArrayness(t *testing.T) {
	a := ROSType{IsBuiltin: true, Builtin: Int32}
	b := ROSType{IsBuiltin: true, Builtin: Int32}
	if !a.Equal(b) {
		t.Fatalf("expected equal builtin types")
	}
	c := ROSType{Package: "std_msgs", Name: "Header"}
	d := ROSType{Package: "std_msgs", Name: "Header"}
	if !c.Equal(d) {
		t.Fatalf("expected equal user types")
	}
	if a.Equal(c) {
		t.Fatalf("builtin and user type must not be equal")
	}
	arrType, _, _, _ := ParseROSType("std_msgs/Header[]")
	if !arrType.Equal(c) {
		t.Fatalf("expected array and scalar of the same type to be equal")
	}
}
