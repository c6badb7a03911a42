package introspect

import "testing"

const navSatDef = `uint8 STATUS_NO_FIX=-1
uint8 STATUS_FIX=0
uint8 STATUS_SBAS_FIX=1
uint8 STATUS_GBAS_FIX=2
int8 status
uint16 SERVICE_GPS=1
uint16 SERVICE_GLONASS=2
uint16 SERVICE_COMPASS=4
uint16 SERVICE_GALILEO=8
uint16 service
`

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry(nil)
	err := r.RegisterMessageDefinition("nav_stat", ROSType{Package: "sensor_msgs", Name: "NavSatStatus"}, navSatDef)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	schema, err := r.lookup("nav_stat")
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if schema.RootType.Name != "NavSatStatus" {
		t.Fatalf("unexpected root type %+v", schema.RootType)
	}
}

func TestRegistry_LookupUnknownTopic(t *testing.T) {
	r := NewRegistry(nil)
	if _, err := r.lookup("missing"); err == nil {
		t.Fatalf("expected SchemaNotFoundError")
	} else if _, ok := err.(*SchemaNotFoundError); !ok {
		t.Fatalf("expected SchemaNotFoundError, got %T", err)
	}
}

func TestRegistry_ReRegisterIdenticalIsNoop(t *testing.T) {
	r := NewRegistry(nil)
	rootType := ROSType{Package: "sensor_msgs", Name: "NavSatStatus"}
	if err := r.RegisterMessageDefinition("nav_stat", rootType, navSatDef); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	before, _ := r.lookup("nav_stat")
	if err := r.RegisterMessageDefinition("nav_stat", rootType, navSatDef); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	after, _ := r.lookup("nav_stat")
	if before != after {
		t.Fatalf("expected identical schema identity after idempotent re-registration")
	}
}

func TestRegistry_ReRegisterDifferentReplaces(t *testing.T) {
	r := NewRegistry(nil)
	rootType := ROSType{Package: "sensor_msgs", Name: "NavSatStatus"}
	if err := r.RegisterMessageDefinition("nav_stat", rootType, navSatDef); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	before, _ := r.lookup("nav_stat")
	if err := r.RegisterMessageDefinition("nav_stat", rootType, navSatDef+"uint8 extra\n"); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	after, _ := r.lookup("nav_stat")
	if before == after {
		t.Fatalf("expected a new schema identity after definition change")
	}
}

func TestRegistry_RecursiveDefinitionRejected(t *testing.T) {
	r := NewRegistry(nil)
	def := `a/Node[] children
int32 value
================================================================================
MSG: a/Node
a/Node[] children
int32 value
`
	err := r.RegisterMessageDefinition("recursive", ROSType{Package: "a", Name: "Node"}, def)
	if err == nil {
		t.Fatalf("expected RecursiveDefinitionError")
	}
	if _, ok := err.(*RecursiveDefinitionError); !ok {
		t.Fatalf("expected RecursiveDefinitionError, got %T", err)
	}
}

func TestRegistry_RepeatedTypeButNoRecursionIsFine(t *testing.T) {
	r := NewRegistry(nil)
	def := `a/Leaf left
a/Leaf right
================================================================================
MSG: a/Leaf
int32 value
`
	if err := r.RegisterMessageDefinition("shared_leaf", ROSType{Package: "a", Name: "Pair"}, def); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}
