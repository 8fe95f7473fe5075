package reconcile

import (
	"sort"
	"strconv"
	"strings"
)

// Well-known record fields.
const (
	// FieldName holds the record's (short) name.
	FieldName = "Name"
	// FieldAddress is the prefix of per-container address fields ("Address_1", "Address_2", ...).
	FieldAddress = "Address"
)

// Record is one flat, imported property bag.
// Keys are property names, values are the raw string values from the import source.
// Indexed properties use a 1-based "_<n>" suffix (e.g. "Address_1", "AccessRight_2").
type Record map[string]string

// Get returns the value for key, or "" if it is not present.
func (r Record) Get(key string) string {
	return r[key]
}

// Has reports whether the record carries key at all (even with an empty value).
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Name returns the value of the Name field.
func (r Record) Name() string {
	return strings.TrimSpace(r[FieldName])
}

// Address returns the address for a 0-based container index.
// It reads "Address_<container+1>" and falls back to a bare "Address" field,
// which single-controller import files use.
func (r Record) Address(container int) string {
	if v, ok := r[IndexedKey(FieldAddress, container)]; ok {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(r[FieldAddress])
}

// HasAddress reports whether the record carries an address field for container.
func (r Record) HasAddress(container int) bool {
	return r.Has(IndexedKey(FieldAddress, container)) || r.Has(FieldAddress)
}

// Addresses returns the record's addresses for containers [0, count).
// Missing containers yield "".
func (r Record) Addresses(count int) []string {
	if count <= 0 {
		return nil
	}
	out := make([]string, count)
	for i := 0; i < count; i++ {
		out[i] = strings.TrimSpace(r[IndexedKey(FieldAddress, i)])
	}
	// A bare Address field belongs to whichever container the import targets;
	// for rule evaluation it is simply one more candidate.
	if bare := strings.TrimSpace(r[FieldAddress]); bare != "" {
		out = append(out, bare)
	}
	return out
}

// Indexed collects the values of "<prefix>_<n>" fields ordered by n.
// The returned slice is sized to the highest index present; gaps are "".
// ok is false when the record has no such field at all.
func (r Record) Indexed(prefix string) (values []string, ok bool) {
	max := 0
	found := map[int]string{}
	for key, value := range r {
		n, match := indexOf(key, prefix)
		if !match {
			continue
		}
		found[n] = strings.TrimSpace(value)
		if n > max {
			max = n
		}
	}
	if len(found) == 0 {
		return nil, false
	}
	values = make([]string, max)
	for n, v := range found {
		values[n-1] = v
	}
	return values, true
}

// Clone returns a shallow copy that can be modified without touching r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Keys returns the record's keys sorted, for stable output.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IndexedKey builds the field name for a 0-based index, e.g. ("Address", 0) -> "Address_1".
func IndexedKey(prefix string, index int) string {
	return prefix + "_" + strconv.Itoa(index+1)
}

func indexOf(key, prefix string) (int, bool) {
	if !strings.HasPrefix(key, prefix+"_") {
		return 0, false
	}
	n, err := strconv.Atoi(key[len(prefix)+1:])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
