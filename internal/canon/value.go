package canon

import (
	"sort"
	"unicode/utf16"
)

// Value is a sealed interface over the constrained set of shapes that can
// appear in a canonical JSON document in this module: strings, ordered
// objects, and arrays of values. There is no null and no number, because
// nothing hashed through this package needs them: the overlay hash preimage
// (mapping.json's four fields) is built entirely from strings and
// string-keyed maps of strings. object.json, which carries an integer
// schema_version, is not serialized through this package.
type Value interface {
	canonValue()
}

// String is a scalar string value.
type String string

func (String) canonValue() {}

// Array is an ordered sequence of values.
type Array []Value

func (Array) canonValue() {}

// Object is a string-keyed map of values. Iteration order is never
// significant; SortedKeys always gives the RFC 8785 order.
type Object map[string]Value

func (Object) canonValue() {}

// SortedKeys returns obj's keys ordered by UTF-16 code unit, the ordering
// RFC 8785 mandates for canonical JSON object keys.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return lessUTF16(keys[i], keys[j]) })
	return keys
}

func lessUTF16(a, b string) bool {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	n := len(a16)
	if len(b16) < n {
		n = len(b16)
	}
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			return a16[i] < b16[i]
		}
	}
	return len(a16) < len(b16)
}

// ObjectOf builds an Object from string-keyed string values, the common case
// for overlay serialization.
func ObjectOf(fields map[string]string) Object {
	obj := make(Object, len(fields))
	for k, v := range fields {
		obj[k] = String(v)
	}
	return obj
}
