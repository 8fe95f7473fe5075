package reconcile

// Plan is the outcome of one import pass: one decision per imported record,
// followed by Delete (or None) decisions for existing items the import did not touch.
// Decisions is the complete MergedItems set; Imported, Skipped and Deleted are views of it.
type Plan[T Item] struct {
	// Decisions holds every decision in processing order.
	Decisions []MergeDecision[T] `json:"decisions"`

	// Invalid lists records rejected by validation. Each also has a Skip decision.
	Invalid []InvalidRecord `json:"invalid,omitempty"`

	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`

	// Mode is the mode the plan was resolved in.
	Mode Mode `json:"mode"`

	// Settings are the settings the plan was resolved with.
	Settings Settings `json:"settings"`

	// Items is the item list after Apply: the existing items followed by the new ones.
	Items []T `json:"-"`

	existing   []T
	containers int
	applied    bool
}

// Applied reports whether the plan has been executed.
func (p *Plan[T]) Applied() bool {
	return p.applied
}

// Containers returns the number of containers the pass considered.
func (p *Plan[T]) Containers() int {
	return p.containers
}

// Imported returns the Add, Merge, OverWrite and ChangeName decisions.
func (p *Plan[T]) Imported() []MergeDecision[T] {
	return p.filter(func(a MergeAction) bool { return a.IsImport() })
}

// Skipped returns the Skip decisions.
func (p *Plan[T]) Skipped() []MergeDecision[T] {
	return p.filter(func(a MergeAction) bool { return a == ActionSkip })
}

// Deleted returns the Delete decisions.
func (p *Plan[T]) Deleted() []MergeDecision[T] {
	return p.filter(func(a MergeAction) bool { return a == ActionDelete })
}

// ByAction returns the decisions with the given action.
func (p *Plan[T]) ByAction(action MergeAction) []MergeDecision[T] {
	return p.filter(func(a MergeAction) bool { return a == action })
}

// ImportedItems returns the items written by the pass. Items created by the pass
// are only available after Apply.
func (p *Plan[T]) ImportedItems() []T {
	var out []T
	for _, d := range p.Decisions {
		if d.Action.IsImport() && d.slot >= 0 && (p.applied || d.slot < len(p.existing)) {
			out = append(out, d.Item)
		}
	}
	return out
}

// Names returns the decision names for the given action, in order.
func (p *Plan[T]) Names(action MergeAction) []string {
	var names []string
	for _, d := range p.Decisions {
		if d.Action == action {
			names = append(names, d.Name)
		}
	}
	return names
}

// HasChanges reports whether applying the plan writes or deletes anything.
func (p *Plan[T]) HasChanges() bool {
	for _, d := range p.Decisions {
		if d.Action.IsImport() || d.Action == ActionDelete {
			return true
		}
	}
	return false
}

func (p *Plan[T]) add(d MergeDecision[T]) {
	p.Decisions = append(p.Decisions, d)
	switch d.Action {
	case ActionAdd:
		p.Summary.Added++
	case ActionMerge:
		p.Summary.Merged++
	case ActionOverWrite:
		p.Summary.OverWritten++
	case ActionChangeName:
		p.Summary.Renamed++
	case ActionSkip:
		p.Summary.Skipped++
	case ActionDelete:
		p.Summary.Deleted++
	}
}

func (p *Plan[T]) filter(keep func(MergeAction) bool) []MergeDecision[T] {
	var out []MergeDecision[T]
	for _, d := range p.Decisions {
		if keep(d.Action) {
			out = append(out, d)
		}
	}
	return out
}
