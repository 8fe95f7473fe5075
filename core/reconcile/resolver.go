package reconcile

import (
	"context"
	"fmt"
	"strings"
)

// pass holds the state of one Plan call.
type pass struct {
	settings   Settings
	mode       Mode
	rules      Rules
	index      *MatchIndex
	containers int
	existing   int
	touched    []bool
	total      int
}

func (p *pass) touch(slot int) {
	if slot >= 0 && slot < p.existing {
		p.touched[slot] = true
	}
}

// resolve decides the action for one record. The first applicable rule wins:
//  1. address owned by a differently named item (CompareAddresses) -> Skip
//  2. name match -> Merge, or the conflict callback's answer in ModeDefault
//  3. no name match -> Add when a rule matches, Skip when rules exist but none
//     matches, otherwise Add or the callback's answer in ModeDefault
func (e *Engine[T]) resolve(ctx context.Context, p *pass, i int, rec Record) (MergeDecision[T], error) {
	name := e.adapter.FullName(rec)
	ci := p.settings.ControllerIndex
	address := rec.Address(ci)
	ruleMatch := !p.rules.Empty() && p.rules.Match(rec.Addresses(p.containers))

	if p.settings.CompareAddresses {
		if owner, ok := p.index.FindByAddress(ci, address); ok && p.index.NameOf(owner) != name {
			p.touch(owner)
			// The record still names its own item; a skipped record never flags it for deletion.
			if slot, ok := p.index.FindByName(name); ok {
				p.touch(slot)
			}
			return skip[T](name, rec, fmt.Sprintf("address %q is already used by %q", address, p.index.NameOf(owner))), nil
		}
	}

	if slot, ok := p.index.FindByName(name); ok {
		action, reason := ActionMerge, ""
		switch {
		case p.mode == ModeSilent:
			reason = "silent import"
		case ruleMatch:
			reason = "automatic import rule matched"
		case e.hooks.Conflict == nil:
			reason = "no conflict handler"
		default:
			choice, err := e.ask(ctx, p, i, rec, name, p.index.NameOf(slot))
			if err != nil {
				return MergeDecision[T]{}, err
			}
			switch choice.Action {
			case ActionMerge, ActionOverWrite:
				action, reason = choice.Action, "chosen by user"
			case ActionSkip, ActionNone:
				p.touch(slot)
				d := skip[T](name, rec, "skipped by user")
				d.slot = slot
				return d, nil
			case ActionChangeName:
				return e.rename(p, rec, name, choice.NewName)
			default:
				return MergeDecision[T]{}, fmt.Errorf("%w: %s for existing item %q", ErrInvalidChoice, choice.Action, name)
			}
		}

		p.touch(slot)
		if address != "" || (action == ActionOverWrite && rec.HasAddress(ci)) {
			p.index.MoveAddress(slot, ci, address)
		}
		return MergeDecision[T]{Name: name, Action: action, Reason: reason, Source: rec, slot: slot}, nil
	}

	switch {
	case ruleMatch:
		return e.add(p, rec, name, "automatic import rule matched"), nil
	case !p.rules.Empty():
		return skip[T](name, rec, "no automatic import rule matched"), nil
	case p.mode == ModeSilent:
		return e.add(p, rec, name, "silent import"), nil
	case e.hooks.Conflict == nil:
		return e.add(p, rec, name, "new item"), nil
	}

	choice, err := e.ask(ctx, p, i, rec, name, "")
	if err != nil {
		return MergeDecision[T]{}, err
	}
	switch choice.Action {
	case ActionSkip:
		return skip[T](name, rec, "skipped by user"), nil
	case ActionChangeName:
		return e.rename(p, rec, name, choice.NewName)
	case ActionAdd, ActionNone, ActionMerge, ActionOverWrite:
		return e.add(p, rec, name, "new item"), nil
	default:
		return MergeDecision[T]{}, fmt.Errorf("%w: %s for new item %q", ErrInvalidChoice, choice.Action, name)
	}
}

func (e *Engine[T]) ask(ctx context.Context, p *pass, i int, rec Record, name, existing string) (Choice, error) {
	choice, err := e.hooks.Conflict(ctx, Conflict{
		Record:   rec,
		Name:     name,
		Existing: existing,
		Index:    i,
		Total:    p.total,
	})
	if err != nil {
		return Choice{}, fmt.Errorf("resolve conflict for %q: %w", name, err)
	}
	return choice, nil
}

func (e *Engine[T]) add(p *pass, rec Record, name, reason string) MergeDecision[T] {
	ci := p.settings.ControllerIndex
	slot := p.index.AddPending(name, ci, rec.Address(ci))
	return MergeDecision[T]{Name: name, Action: ActionAdd, Reason: reason, Source: rec, slot: slot}
}

// rename imports rec as a new item under newShort. The existing item keeps its name
// and does not count as touched.
func (e *Engine[T]) rename(p *pass, rec Record, oldName, newShort string) (MergeDecision[T], error) {
	newShort = strings.TrimSpace(newShort)
	if newShort == "" {
		return MergeDecision[T]{}, fmt.Errorf("%w: empty new name for %q", ErrInvalidChoice, oldName)
	}
	renamed := e.adapter.SetShortName(rec, newShort)
	newName := e.adapter.FullName(renamed)
	if newName == oldName {
		return MergeDecision[T]{}, fmt.Errorf("%w: new name for %q is unchanged", ErrInvalidChoice, oldName)
	}
	if _, taken := p.index.FindByName(newName); taken {
		return MergeDecision[T]{}, fmt.Errorf("%w: %q (renaming %q)", ErrNameCollision, newName, oldName)
	}

	ci := p.settings.ControllerIndex
	slot := p.index.AddPending(newName, ci, renamed.Address(ci))
	return MergeDecision[T]{
		Name:   newName,
		Action: ActionChangeName,
		Reason: fmt.Sprintf("renamed from %q", oldName),
		Source: renamed,
		slot:   slot,
	}, nil
}

func skip[T Item](name string, rec Record, reason string) MergeDecision[T] {
	return MergeDecision[T]{Name: name, Action: ActionSkip, Reason: reason, Source: rec, slot: -1}
}
