package lang

import (
	"reflect"
	"testing"
	"time"
)

func TestValue_String(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"null", Null(), ""},
		{"string", String("abc"), "abc"},
		{"int", Int(-42), "-42"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"sequence", Strings([]string{"a"}), ""},
		{"mapping", Mapping(map[string]Value{"k": String("v")}), ""},
		{"date", Date(time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)), "Mar 5, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", Null(), false},
		{"empty string", String(""), false},
		{"string", String("x"), true},
		{"zero", Int(0), false},
		{"int", Int(3), true},
		{"false", Bool(false), false},
		{"true", Bool(true), true},
		{"empty sequence", Sequence(), false},
		{"sequence", Sequence(Null()), true},
		{"empty mapping", Mapping(nil), false},
		{"mapping", Mapping(map[string]Value{"k": Null()}), true},
		{"zero date", Date(time.Time{}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Truthy(); got != tt.want {
				t.Errorf("Truthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValue_Accessors(t *testing.T) {
	m := Mapping(map[string]Value{"title": String("T")})

	if v, ok := m.Lookup("title"); !ok || v.String() != "T" {
		t.Errorf("Lookup(title) = %v, %v", v, ok)
	}

	if _, ok := m.Lookup("missing"); ok {
		t.Error("Lookup(missing) resolved")
	}

	if _, ok := String("x").Lookup("title"); ok {
		t.Error("Lookup on string resolved")
	}

	if _, ok := m.Items(); ok {
		t.Error("Items on mapping succeeded")
	}

	if items, ok := Strings([]string{"a", "b"}).Items(); !ok || len(items) != 2 {
		t.Errorf("Items = %v, %v", items, ok)
	}

	if _, ok := String("x").Time(); ok {
		t.Error("Time on string succeeded")
	}

	if got := Kind(99).String(); got != "Kind(99)" {
		t.Errorf("Kind(99).String() = %q", got)
	}

	if got := KindMapping.String(); got != "mapping" {
		t.Errorf("KindMapping.String() = %q", got)
	}
}

func TestValue_Native(t *testing.T) {
	v := Mapping(map[string]Value{
		"n":    Int(1),
		"b":    Bool(true),
		"tags": Strings([]string{"x"}),
		"none": Null(),
	})

	want := map[string]any{
		"n":    1,
		"b":    true,
		"tags": []any{"x"},
		"none": nil,
	}

	if got := v.Native(); !reflect.DeepEqual(got, want) {
		t.Errorf("Native() = %#v, want %#v", got, want)
	}
}
