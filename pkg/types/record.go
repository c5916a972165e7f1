package types

import "sort"

// Record is one row of domain data: a mapping from field name to Value.
// Records are owned by the caller; the engine never mutates them.
type Record map[string]Value

// Get returns the value stored under key, or Null when the key is absent.
// Absent and explicit null are indistinguishable through Get.
func (r Record) Get(key string) Value {
	return r[key]
}

// Lookup returns the value stored under key and whether the key is present.
func (r Record) Lookup(key string) (Value, bool) {
	v, ok := r[key]
	return v, ok
}

// Keys returns the field names in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a shallow copy of the record. Values are immutable so a
// shallow copy is independent of the original.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge returns a copy of r with the fields of patch applied on top.
// A Null value in patch removes the field.
func (r Record) Merge(patch Record) Record {
	out := r.Clone()
	for k, v := range patch {
		if v.IsNull() {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// Equal reports whether r and o hold the same fields with equal values.
func (r Record) Equal(o Record) bool {
	if len(r) != len(o) {
		return false
	}
	for k, v := range r {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}
