package types

import "testing"

func TestParseTypeName(t *testing.T) {
	enemy := &ClassType{ClassID: 0, Name: "Enemy"}
	lookup := func(name string) (*ClassType, bool) {
		if name == "Enemy" {
			return enemy, true
		}

		return nil, false
	}

	tests := []struct {
		name    string
		input   string
		wantKey string
		wantOk  bool
	}{
		{"primitive", "float", "float", true},
		{"item class", "itemdata", "itemdata", true},
		{"void", "void", "void", true},
		{"class", "Enemy", "class#0", true},
		{"array", "float[]", "float[]", true},
		{"nested array", "Enemy[][]", "class#0[][]", true},
		{"surrounding space", " bool ", "bool", true},
		{"void array", "void[]", "", false},
		{"unknown", "int", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, ok := ParseTypeName(tt.input, lookup)
			if ok != tt.wantOk {
				t.Fatalf("ParseTypeName(%q) ok = %v, want %v", tt.input, ok, tt.wantOk)
			}

			if ok && typ.Key() != tt.wantKey {
				t.Errorf("ParseTypeName(%q).Key() = %q, want %q", tt.input, typ.Key(), tt.wantKey)
			}
		})
	}
}

func TestParseTypeName_NoClasses(t *testing.T) {
	if _, ok := ParseTypeName("Enemy", nil); ok {
		t.Error("expected class name to be unknown without a lookup")
	}
}

func TestEquals(t *testing.T) {
	a := &ArrayType{ElemType: &ClassType{ClassID: 3, Name: "A"}}
	b := &ArrayType{ElemType: &ClassType{ClassID: 3, Name: "Renamed"}}
	c := &ArrayType{ElemType: &ClassType{ClassID: 4, Name: "A"}}

	if !Equals(a, b) {
		t.Error("arrays of the same class should be equal regardless of display name")
	}

	if Equals(a, c) {
		t.Error("arrays of different classes should not be equal")
	}

	if Equals(PrimTypeFloat, &ArrayType{ElemType: PrimTypeFloat}) {
		t.Error("float should not equal float[]")
	}

	if Equals(PrimitiveType(40), PrimitiveType(41)) {
		t.Error("distinct out-of-range primitives should not be equal")
	}

	if PrimitiveType(40).Repr() != "<invalid>" || PrimitiveType(-1).Key() != "prim#-1" {
		t.Errorf("out-of-range primitive: Repr() = %q, Key() = %q", PrimitiveType(40).Repr(), PrimitiveType(-1).Key())
	}
}

func TestIsPointer(t *testing.T) {
	tests := []struct {
		typ  Type
		want bool
	}{
		{PrimTypeFloat, false},
		{PrimTypeFFC, false},
		{&ClassType{ClassID: 0, Name: "A"}, true},
		{&ArrayType{ElemType: PrimTypeBool}, true},
	}

	for _, tt := range tests {
		if got := tt.typ.IsPointer(); got != tt.want {
			t.Errorf("%s.IsPointer() = %v, want %v", tt.typ.Repr(), got, tt.want)
		}
	}
}
