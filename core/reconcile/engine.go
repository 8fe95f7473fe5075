package reconcile

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Engine reconciles imported records against a list of existing items.
// An Engine holds no per-pass state and may be reused; a single pass is
// synchronous and must not run concurrently with other writers of the item list.
type Engine[T Item] struct {
	adapter Adapter[T]
	hooks   Hooks[T]
	logger  *zap.Logger
}

// NewEngine creates an engine for one item type. A nil logger disables logging.
func NewEngine[T Item](adapter Adapter[T], hooks Hooks[T], logger *zap.Logger) *Engine[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine[T]{
		adapter: adapter,
		hooks:   hooks,
		logger:  logger.With(zap.String("adapter", adapter.Name())),
	}
}

// Plan resolves one decision per imported record without mutating anything.
// Records are processed in input order; each decision sees the effect of the
// ones before it (names and addresses claimed earlier in the pass).
func (e *Engine[T]) Plan(ctx context.Context, existing []T, imported []Record, mode Mode, settings Settings) (*Plan[T], error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if mode == "" {
		mode = ModeDefault
	}

	containers := containerCount(existing, imported, settings)
	p := &pass{
		settings:   settings,
		mode:       mode,
		rules:      ParseRules(settings.AutomaticImportRules),
		index:      NewMatchIndex(existing, containers),
		containers: containers,
		existing:   len(existing),
		touched:    make([]bool, len(existing)),
		total:      len(imported),
	}

	plan := &Plan[T]{
		Decisions:  make([]MergeDecision[T], 0, len(imported)),
		Mode:       mode,
		Settings:   settings,
		existing:   existing,
		containers: containers,
	}
	plan.Summary.Records = len(imported)
	plan.Summary.Existing = len(existing)

	for i, rec := range imported {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := e.adapter.FullName(rec)
		if err := e.validate(rec, name, settings.AutomaticImportRules); err != nil {
			plan.Invalid = append(plan.Invalid, InvalidRecord{Index: i, Name: name, Err: err, Message: err.Error()})
			d := skip[T](name, rec, err.Error())
			// A rejected record still names its item; it must not be flagged for deletion.
			if slot, ok := p.index.FindByName(name); ok {
				p.touch(slot)
				if slot < len(existing) {
					d.Item = existing[slot]
				}
			}
			plan.add(d)
			plan.Summary.Invalid++
			e.logger.Debug("rejected import record", zap.Int("index", i), zap.String("name", name), zap.Error(err))
			continue
		}

		d, err := e.resolve(ctx, p, i, rec)
		if err != nil {
			return nil, err
		}
		if d.slot >= 0 && d.slot < len(existing) {
			d.Item = existing[d.slot]
		}
		plan.add(d)
		e.logger.Debug("resolved import record",
			zap.Int("index", i),
			zap.String("name", d.Name),
			zap.String("action", string(d.Action)),
			zap.String("reason", d.Reason),
		)
	}

	for slot, item := range existing {
		if p.touched[slot] {
			continue
		}
		plan.Summary.Untouched++
		switch {
		case settings.DeleteUnused:
			plan.add(MergeDecision[T]{Name: item.GetName(), Action: ActionDelete, Reason: "not in import", Item: item, slot: slot})
		case settings.ReportUntouched:
			plan.add(MergeDecision[T]{Name: item.GetName(), Action: ActionNone, Item: item, slot: slot})
		}
	}

	return plan, nil
}

// Apply executes a plan: existing items are updated in place and new items are
// appended. It returns the resulting item list, which is also stored in plan.Items.
// Delete decisions are reported only; no item is removed.
func (e *Engine[T]) Apply(ctx context.Context, plan *Plan[T]) ([]T, error) {
	if plan.applied {
		return plan.Items, ErrPlanApplied
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ci := plan.Settings.ControllerIndex
	items := plan.existing
	for i := range plan.Decisions {
		d := &plan.Decisions[i]
		switch d.Action {
		case ActionAdd, ActionChangeName:
			if d.slot != len(items) {
				return nil, fmt.Errorf("apply %q: planned slot %d does not follow %d items", d.Name, d.slot, len(items))
			}
			item := e.adapter.New()
			item.SetName(d.Name)
			if address := d.Source.Address(ci); address != "" {
				item.SetAddress(ci, address)
			}
			e.adapter.Apply(item, d.Source, true)
			items = append(items, item)
			d.Item = item

		case ActionMerge:
			item := items[d.slot]
			if address := d.Source.Address(ci); address != "" {
				item.SetAddress(ci, address)
			}
			e.adapter.Apply(item, d.Source, false)
			d.Item = item

		case ActionOverWrite:
			item := items[d.slot]
			if d.Source.HasAddress(ci) {
				item.SetAddress(ci, d.Source.Address(ci))
			}
			e.adapter.Apply(item, d.Source, true)
			d.Item = item
		}
	}

	plan.Items = items
	plan.applied = true
	return items, nil
}

// MergeLists plans and applies one import pass. When settings.UseVerificationDialog
// is set and a verify hook is configured, the plan is shown to it first; a declined
// plan returns ErrCancelled together with the unapplied plan.
func (e *Engine[T]) MergeLists(ctx context.Context, existing []T, imported []Record, mode Mode, settings Settings) (*Plan[T], error) {
	plan, err := e.Plan(ctx, existing, imported, mode, settings)
	if err != nil {
		return nil, err
	}

	if settings.UseVerificationDialog && e.hooks.Verify != nil {
		ok, err := e.hooks.Verify(ctx, plan)
		if err != nil {
			return plan, fmt.Errorf("verify import plan: %w", err)
		}
		if !ok {
			e.logger.Info("import plan declined")
			return plan, ErrCancelled
		}
	}

	if _, err := e.Apply(ctx, plan); err != nil {
		return plan, err
	}

	s := plan.Summary
	e.logger.Info("import merged",
		zap.String("mode", string(plan.Mode)),
		zap.Int("records", s.Records),
		zap.Int("added", s.Added),
		zap.Int("merged", s.Merged),
		zap.Int("overwritten", s.OverWritten),
		zap.Int("renamed", s.Renamed),
		zap.Int("skipped", s.Skipped),
		zap.Int("deleted", s.Deleted),
		zap.Int("invalid", s.Invalid),
	)
	return plan, nil
}

func (e *Engine[T]) validate(rec Record, name, rules string) error {
	if name == "" {
		return fmt.Errorf("record has no %s", FieldName)
	}
	return e.adapter.Validate(rec, rules)
}

// containerCount returns the configured container count, or derives one from the
// data: enough for the targeted controller, every item's slots and every
// "Address_<n>" field present in the records.
func containerCount[T Item](existing []T, imported []Record, settings Settings) int {
	if settings.ControllerCount > 0 {
		return settings.ControllerCount
	}
	n := settings.ControllerIndex + 1
	for _, item := range existing {
		if c := item.AddressCount(); c > n {
			n = c
		}
	}
	for _, rec := range imported {
		if addresses, ok := rec.Indexed(FieldAddress); ok && len(addresses) > n {
			n = len(addresses)
		}
	}
	return n
}
