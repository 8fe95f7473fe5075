package reconcile

import "context"

// Adapter defines the model-specific hooks the engine needs.
// Each adapter knows how to name, create, validate and fill one item type
// (e.g. tags) from flat import records.
type Adapter[T Item] interface {
	// Name returns the unique name of this adapter (e.g. "tags").
	Name() string

	// FullName returns the identity of the record, compared against Item.GetName.
	FullName(rec Record) string

	// ShortName returns the part of the name a user edits when renaming.
	ShortName(rec Record) string

	// SetShortName returns a copy of rec carrying a new short name.
	// rec itself must not be modified.
	SetShortName(rec Record, name string) Record

	// New creates an empty item. The engine sets its name and address.
	New() T

	// Validate rejects records that cannot be imported. rules is the raw
	// automatic import rule string of the pass.
	Validate(rec Record, rules string) error

	// Apply copies the record's properties (other than name and addresses) into item.
	// With overwrite false, empty record values leave the item's values in place
	// and list properties are filled element-wise.
	Apply(item T, rec Record, overwrite bool)
}

// Conflict describes a record the engine could not resolve on its own.
type Conflict struct {
	// Record is the imported record.
	Record Record
	// Name is the record's full name.
	Name string
	// Existing is the name of the matching existing item, "" when the record is new.
	Existing string
	// Index is the record's position in the imported list.
	Index int
	// Total is the number of imported records.
	Total int
}

// Choice is the answer to a Conflict.
type Choice struct {
	// Action is the chosen action.
	Action MergeAction
	// NewName is the short name to import under when Action is ActionChangeName.
	NewName string
}

// ConflictFunc is called synchronously in ModeDefault for records that need a decision.
// It may block (e.g. on a terminal prompt).
type ConflictFunc func(ctx context.Context, c Conflict) (Choice, error)

// VerifyFunc inspects a plan before it is applied. Returning false cancels the pass.
type VerifyFunc[T Item] func(ctx context.Context, plan *Plan[T]) (bool, error)

// Hooks bundles the optional interactive collaborators.
type Hooks[T Item] struct {
	// Conflict resolves ambiguous records in ModeDefault. Nil resolves them automatically.
	Conflict ConflictFunc
	// Verify is consulted when Settings.UseVerificationDialog is set.
	Verify VerifyFunc[T]
}
