package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tag-manager/core/reconcile"
	"tag-manager/feature/tags"

	"github.com/charmbracelet/huh"
	"go.uber.org/zap"
)

// allSuffix marks a prompt option that answers every remaining conflict of its kind.
const allSuffix = ":all"

// conflictPrompter resolves import conflicts on the terminal.
type conflictPrompter struct {
	// sticky holds "apply to all" answers, keyed by whether the tag exists.
	sticky map[bool]reconcile.MergeAction
}

func newConflictPrompter() *conflictPrompter {
	return &conflictPrompter{sticky: make(map[bool]reconcile.MergeAction)}
}

// Ask implements reconcile.ConflictFunc.
func (p *conflictPrompter) Ask(ctx context.Context, c reconcile.Conflict) (reconcile.Choice, error) {
	exists := c.Existing != ""
	if action, ok := p.sticky[exists]; ok {
		return reconcile.Choice{Action: action}, nil
	}

	var (
		choice      string
		description string
		options     []huh.Option[string]
	)
	if exists {
		description = fmt.Sprintf("A tag named %q already exists.", c.Existing)
		options = []huh.Option[string]{
			huh.NewOption("Merge (fill empty values)", string(reconcile.ActionMerge)),
			huh.NewOption("Overwrite (replace all values)", string(reconcile.ActionOverWrite)),
			huh.NewOption("Import under another name", string(reconcile.ActionChangeName)),
			huh.NewOption("Skip this record", string(reconcile.ActionSkip)),
			huh.NewOption("Merge all remaining", string(reconcile.ActionMerge)+allSuffix),
			huh.NewOption("Overwrite all remaining", string(reconcile.ActionOverWrite)+allSuffix),
			huh.NewOption("Skip all remaining", string(reconcile.ActionSkip)+allSuffix),
		}
	} else {
		description = "This tag does not exist yet."
		options = []huh.Option[string]{
			huh.NewOption("Add", string(reconcile.ActionAdd)),
			huh.NewOption("Add under another name", string(reconcile.ActionChangeName)),
			huh.NewOption("Skip this record", string(reconcile.ActionSkip)),
			huh.NewOption("Add all remaining", string(reconcile.ActionAdd)+allSuffix),
			huh.NewOption("Skip all remaining", string(reconcile.ActionSkip)+allSuffix),
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("[%d/%d] %s", c.Index+1, c.Total, c.Name)).
				Description(description+"\n"+recordSummary(c.Record)).
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return reconcile.Choice{}, promptError(err)
	}

	value, all := strings.CutSuffix(choice, allSuffix)
	action, err := reconcile.ParseMergeAction(value)
	if err != nil {
		return reconcile.Choice{}, err
	}
	if all {
		p.sticky[exists] = action
	}
	if action != reconcile.ActionChangeName {
		return reconcile.Choice{Action: action}, nil
	}

	var name string
	input := huh.NewInput().
		Title("New name").
		Description(fmt.Sprintf("Import %q as", c.Record.Name())).
		Value(&name).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("a name is required")
			}
			if strings.TrimSpace(s) == c.Record.Name() {
				return errors.New("the name is unchanged")
			}
			return nil
		})
	if err := huh.NewForm(huh.NewGroup(input)).RunWithContext(ctx); err != nil {
		return reconcile.Choice{}, promptError(err)
	}
	return reconcile.Choice{Action: reconcile.ActionChangeName, NewName: name}, nil
}

// verifyPlan returns a verify hook that reports the plan and asks for confirmation.
func verifyPlan(l *zap.Logger) reconcile.VerifyFunc[*tags.Tag] {
	return func(ctx context.Context, plan *reconcile.Plan[*tags.Tag]) (bool, error) {
		printPlan(l, plan)
		if !plan.HasChanges() {
			return true, nil
		}

		ok := false
		confirm := huh.NewConfirm().
			Title("Apply this import?").
			Affirmative("Apply").
			Negative("Cancel").
			Value(&ok)
		if err := huh.NewForm(huh.NewGroup(confirm)).RunWithContext(ctx); err != nil {
			return false, promptError(err)
		}
		return ok, nil
	}
}

func promptError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return reconcile.ErrCancelled
	}
	return err
}

// recordSummary renders a record's non-empty fields other than Name on one line.
func recordSummary(rec reconcile.Record) string {
	parts := []string{}
	for _, k := range rec.Keys() {
		if k == reconcile.FieldName || rec.Get(k) == "" {
			continue
		}
		parts = append(parts, k+"="+rec.Get(k))
	}
	return strings.Join(parts, "  ")
}
