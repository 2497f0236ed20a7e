package vdom

import "testing"

func TestSameValue(t *testing.T) {
	fn := func() {}
	sl := []any{1}
	m := map[string]int{}

	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil vs value", nil, 0, false},
		{"equal ints", 3, 3, true},
		{"different ints", 3, 4, false},
		{"int vs int64", int(3), int64(3), false},
		{"equal strings", "x", "x", true},
		{"string vs number", "1", 1, false},
		{"same func", fn, fn, true},
		{"same slice", sl, sl, true},
		{"distinct slices", []any{1}, []any{1}, false},
		{"same map", m, m, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameValue(tt.a, tt.b); got != tt.want {
				t.Errorf("SameValue(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestShallowEqual(t *testing.T) {
	if !ShallowEqual(Props{"a": 1}, Props{"a": 1}) {
		t.Error("identical bags should be equal")
	}
	if ShallowEqual(Props{"a": 1}, Props{"a": 2}) {
		t.Error("different values should not be equal")
	}
	if ShallowEqual(Props{"a": 1}, Props{"a": 1, "b": 2}) {
		t.Error("extra key should not be equal")
	}
	if !ShallowEqual(Props{}, Props{}) {
		t.Error("empty bags should be equal")
	}
}

func TestDepsEqual(t *testing.T) {
	if DepsEqual(nil, nil) {
		t.Error("nil deps never compare equal")
	}
	if DepsEqual(nil, []any{}) {
		t.Error("nil vs empty should not be equal")
	}
	if !DepsEqual([]any{}, []any{}) {
		t.Error("two empty lists should be equal")
	}
	if !DepsEqual([]any{1, "a"}, []any{1, "a"}) {
		t.Error("pairwise equal lists should be equal")
	}
	if DepsEqual([]any{1}, []any{1, 2}) {
		t.Error("length mismatch should not be equal")
	}
}

func TestFlattenChildren(t *testing.T) {
	flat := FlattenChildren([]any{"a", []any{"b", []any{nil, "c"}}, true})

	want := []any{"a", "b", nil, "c", true}
	if len(flat) != len(want) {
		t.Fatalf("len = %d, want %d", len(flat), len(want))
	}
	for i := range want {
		if flat[i] != want[i] {
			t.Errorf("flat[%d] = %v, want %v", i, flat[i], want[i])
		}
	}
}

func TestToChildArrayDropsEmpties(t *testing.T) {
	out := ToChildArray([]any{"a", nil, false, true, (*VNode)(nil), "b"})

	if len(out) != 2 || out[0] != "a" || out[1] != "b" {
		t.Errorf("out = %v, want [a b]", out)
	}
}

func TestTextOf(t *testing.T) {
	if s, ok := TextOf(42); !ok || s != "42" {
		t.Errorf("TextOf(42) = %q %v", s, ok)
	}
	if s, ok := TextOf("x"); !ok || s != "x" {
		t.Errorf("TextOf(x) = %q %v", s, ok)
	}
	if s, ok := TextOf(Text("t")); !ok || s != "t" {
		t.Errorf("TextOf(Text) = %q %v", s, ok)
	}
	if _, ok := TextOf(Div()); ok {
		t.Error("element vnode is not textual")
	}
	if s, ok := TextOf(1.5); !ok || s != "1.5" {
		t.Errorf("TextOf(1.5) = %q %v", s, ok)
	}
}
