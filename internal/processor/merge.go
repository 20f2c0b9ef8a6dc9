package processor

import (
	"reflect"
)

// mergeReflect sets out to b where b is set, and to a otherwise.
// Structs are merged field by field, as are pointers to structs.
// Other pointers count as set when non-nil, so a pointer to a zero value still overrides.
func mergeReflect(t reflect.Type, a, b, out reflect.Value) {
	switch t.Kind() {
	case reflect.Struct:
		for _, f := range reflect.VisibleFields(t) {
			if !f.IsExported() || len(f.Index) > 1 {
				continue
			}
			mergeReflect(f.Type, a.FieldByIndex(f.Index), b.FieldByIndex(f.Index), out.FieldByIndex(f.Index))
		}
	case reflect.Pointer:
		switch {
		case a.IsNil():
			out.Set(b)
		case b.IsNil():
			out.Set(a)
		case t.Elem().Kind() == reflect.Struct:
			out.Set(reflect.New(t.Elem()))
			mergeReflect(t.Elem(), a.Elem(), b.Elem(), out.Elem())
		default:
			out.Set(b)
		}
	default:
		if b.IsZero() {
			out.Set(a)
		} else {
			out.Set(b)
		}
	}
}

// Merge returns a with all fields overridden that are set in b.
func Merge[T any](a T, b T) T {
	var out T
	mergeReflect(reflect.TypeOf((*T)(nil)).Elem(), reflect.ValueOf(a), reflect.ValueOf(b), reflect.ValueOf(&out).Elem())
	return out
}
