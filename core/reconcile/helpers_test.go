package reconcile

import (
	"context"
	"fmt"
	"testing"
)

// testItem is a minimal tag-like item.
type testItem struct {
	name         string
	group        string
	description  string
	addresses    []string
	accessRights []string
}

func (t *testItem) GetName() string     { return t.name }
func (t *testItem) SetName(name string) { t.name = name }
func (t *testItem) AddressCount() int   { return len(t.addresses) }

func (t *testItem) GetAddress(container int) string {
	if container < 0 || container >= len(t.addresses) {
		return ""
	}
	return t.addresses[container]
}

func (t *testItem) SetAddress(container int, address string) {
	for len(t.addresses) <= container {
		t.addresses = append(t.addresses, "")
	}
	t.addresses[container] = address
}

func (t *testItem) clone() *testItem {
	c := *t
	c.addresses = append([]string(nil), t.addresses...)
	c.accessRights = append([]string(nil), t.accessRights...)
	return &c
}

// testAdapter is a simple test adapter. Names are "<Group>.<Name>" when a group is set.
type testAdapter struct {
	validate func(rec Record, rules string) error
}

func (a *testAdapter) Name() string { return "test" }

func (a *testAdapter) FullName(rec Record) string {
	if g := rec.Get("Group"); g != "" && rec.Name() != "" {
		return g + "." + rec.Name()
	}
	return rec.Name()
}

func (a *testAdapter) ShortName(rec Record) string { return rec.Name() }

func (a *testAdapter) SetShortName(rec Record, name string) Record {
	out := rec.Clone()
	out[FieldName] = name
	return out
}

func (a *testAdapter) New() *testItem { return &testItem{} }

func (a *testAdapter) Validate(rec Record, rules string) error {
	if a.validate != nil {
		return a.validate(rec, rules)
	}
	return nil
}

func (a *testAdapter) Apply(item *testItem, rec Record, overwrite bool) {
	if rec.Has("Group") && (overwrite || rec.Get("Group") != "") {
		item.group = rec.Get("Group")
	}
	if rec.Has("Description") && (overwrite || rec.Get("Description") != "") {
		item.description = rec.Get("Description")
	}
	rights, ok := rec.Indexed("AccessRight")
	if !ok {
		return
	}
	if overwrite {
		item.accessRights = nil
		for _, r := range rights {
			if r != "" {
				item.accessRights = append([]string(nil), rights...)
				break
			}
		}
		return
	}
	for i, r := range rights {
		if r == "" {
			continue
		}
		for len(item.accessRights) <= i {
			item.accessRights = append(item.accessRights, "")
		}
		item.accessRights[i] = r
	}
}

func newTestEngine(hooks Hooks[*testItem]) *Engine[*testItem] {
	return NewEngine[*testItem](&testAdapter{}, hooks, nil)
}

// items builds existing items with one address each on container 0 ("" for none).
func items(pairs ...string) []*testItem {
	var out []*testItem
	for i := 0; i+1 < len(pairs); i += 2 {
		it := &testItem{name: pairs[i]}
		if pairs[i+1] != "" {
			it.SetAddress(0, pairs[i+1])
		}
		out = append(out, it)
	}
	return out
}

// records builds records with a Name and an Address_1 field.
func records(pairs ...string) []Record {
	var out []Record
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Record{FieldName: pairs[i], "Address_1": pairs[i+1]})
	}
	return out
}

func snapshot(list []*testItem) []testItem {
	out := make([]testItem, len(list))
	for i, it := range list {
		out[i] = *it.clone()
	}
	return out
}

func names[T Item](decisions []MergeDecision[T]) []string {
	var out []string
	for _, d := range decisions {
		out = append(out, d.Name)
	}
	return out
}

// failConflict fails the test if the conflict callback is reached.
func failConflict(t *testing.T) ConflictFunc {
	return func(ctx context.Context, c Conflict) (Choice, error) {
		t.Fatalf("unexpected conflict callback for %q", c.Name)
		return Choice{}, fmt.Errorf("unreachable")
	}
}

// answer returns a conflict callback that always answers with action.
func answer(action MergeAction) ConflictFunc {
	return func(ctx context.Context, c Conflict) (Choice, error) {
		return Choice{Action: action}, nil
	}
}
