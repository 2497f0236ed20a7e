package vdom

import "reflect"

// SameValue reports whether a and b are the same value in the sense used by
// setter change detection and dependency comparison: equal dynamic types and
// == equality for comparable values, pointer identity for funcs, maps, and
// slices. Values of differing types are never the same.
func SameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Func:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Slice:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return false
}

// ShallowEqual reports whether two prop bags have the same keys with
// SameValue-equal values.
func ShallowEqual(a, b Props) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !SameValue(av, bv) {
			return false
		}
	}
	return true
}

// DepsEqual reports whether two dependency lists have the same length and
// pairwise SameValue-equal entries. A nil list never equals anything,
// including another nil list: omitted dependencies mean "changed every
// time".
func DepsEqual(a, b []any) bool {
	if a == nil || b == nil {
		return false
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !SameValue(a[i], b[i]) {
			return false
		}
	}
	return true
}
