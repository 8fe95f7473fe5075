package reconcile

import "fmt"

// MergeAction is the decision taken for one record / existing item pair.
type MergeAction string

const (
	// ActionNone leaves an existing item untouched.
	ActionNone MergeAction = "none"
	// ActionAdd creates a new item from the record.
	ActionAdd MergeAction = "add"
	// ActionMerge fills the existing item with the record's non-empty values.
	ActionMerge MergeAction = "merge"
	// ActionOverWrite replaces the existing item's values with the record's, empty values included.
	ActionOverWrite MergeAction = "overwrite"
	// ActionSkip ignores the record.
	ActionSkip MergeAction = "skip"
	// ActionChangeName imports the record as a new item under another name.
	ActionChangeName MergeAction = "change_name"
	// ActionDelete flags an existing item that the import no longer contains.
	ActionDelete MergeAction = "delete"
)

// IsImport reports whether the action results in an item being written.
func (a MergeAction) IsImport() bool {
	switch a {
	case ActionAdd, ActionMerge, ActionOverWrite, ActionChangeName:
		return true
	default:
		return false
	}
}

// ParseMergeAction converts a string (as used in config files and CLI flags) to a MergeAction.
func ParseMergeAction(s string) (MergeAction, error) {
	switch a := MergeAction(s); a {
	case ActionNone, ActionAdd, ActionMerge, ActionOverWrite, ActionSkip, ActionChangeName, ActionDelete:
		return a, nil
	default:
		return "", fmt.Errorf("unknown merge action %q", s)
	}
}

// Mode selects how conflicts are resolved.
type Mode string

const (
	// ModeDefault resolves ambiguous records through the conflict callback (interactive).
	ModeDefault Mode = "default"
	// ModeSilent resolves every record automatically.
	ModeSilent Mode = "silent"
)

// ParseMode converts a string to a Mode. An empty string yields ModeDefault.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeDefault:
		return ModeDefault, nil
	case ModeSilent:
		return ModeSilent, nil
	default:
		return "", fmt.Errorf("unknown import mode %q (want %q or %q)", s, ModeDefault, ModeSilent)
	}
}

// Item is the view of an existing domain object the engine works with.
// Implementations are owned by the caller and mutated in place.
type Item interface {
	// GetName returns the item's full name, the identity used for matching.
	GetName() string
	// SetName renames the item.
	SetName(name string)
	// GetAddress returns the address for a 0-based container, "" if unset.
	GetAddress(container int) string
	// SetAddress writes the address for one container, leaving the others untouched.
	SetAddress(container int, address string)
	// AddressCount returns the number of address slots currently held.
	AddressCount() int
}

// Settings controls one merge pass.
type Settings struct {
	// ControllerIndex is the 0-based container the import targets.
	ControllerIndex int `json:"controller_index"`

	// ControllerCount is the number of configured containers.
	// Zero derives it from the data (at least ControllerIndex+1).
	ControllerCount int `json:"controller_count"`

	// DeleteUnused flags existing items the import did not touch as deleted.
	DeleteUnused bool `json:"delete_unused"`

	// CompareAddresses skips records whose address is owned by a differently named item.
	CompareAddresses bool `json:"compare_addresses"`

	// UseVerificationDialog runs the verify hook on the plan before it is applied.
	UseVerificationDialog bool `json:"use_verification_dialog"`

	// AutomaticImportRules is a "|"-separated list of wildcard address patterns.
	AutomaticImportRules string `json:"automatic_import_rules"`

	// ReportUntouched adds an ActionNone decision for every existing item the
	// import did not touch (when DeleteUnused is off).
	ReportUntouched bool `json:"report_untouched"`
}

// Validate checks settings that would make a pass meaningless.
func (s Settings) Validate() error {
	if s.ControllerIndex < 0 {
		return fmt.Errorf("%w: controller index %d is negative", ErrInvalidSettings, s.ControllerIndex)
	}
	if s.ControllerCount > 0 && s.ControllerIndex >= s.ControllerCount {
		return fmt.Errorf("%w: controller index %d out of range for %d controllers",
			ErrInvalidSettings, s.ControllerIndex, s.ControllerCount)
	}
	return nil
}

// MergeDecision records what happened to one item.
type MergeDecision[T Item] struct {
	// Name is the item name the decision applies to (the new name for ChangeName).
	Name string `json:"name"`

	// Action is the resolved merge action.
	Action MergeAction `json:"action"`

	// Reason explains automatic decisions (e.g. "address collision with Tag3").
	Reason string `json:"reason,omitempty"`

	// Source is the imported record, nil for Delete/None decisions.
	Source Record `json:"source,omitempty"`

	// Item is the affected item. It is set for existing targets during Plan and
	// for newly created items once the plan is applied.
	Item T `json:"-"`

	slot int
}

// Summary provides aggregate counts for a pass.
type Summary struct {
	// Records is the number of imported records.
	Records int `json:"records"`
	// Existing is the number of items before the pass.
	Existing int `json:"existing"`
	// Added counts Add decisions.
	Added int `json:"added"`
	// Merged counts Merge decisions.
	Merged int `json:"merged"`
	// OverWritten counts OverWrite decisions.
	OverWritten int `json:"overwritten"`
	// Renamed counts ChangeName decisions.
	Renamed int `json:"renamed"`
	// Skipped counts Skip decisions.
	Skipped int `json:"skipped"`
	// Deleted counts Delete decisions.
	Deleted int `json:"deleted"`
	// Untouched counts existing items no record referred to.
	Untouched int `json:"untouched"`
	// Invalid counts records rejected by validation (also counted in Skipped).
	Invalid int `json:"invalid"`
}

// InvalidRecord is a record rejected by the adapter's validation hook.
type InvalidRecord struct {
	// Index is the position of the record in the imported list.
	Index int `json:"index"`
	// Name is the record's full name (may be empty).
	Name string `json:"name"`
	// Err is the validation error.
	Err error `json:"-"`
	// Message is Err rendered for JSON output.
	Message string `json:"message"`
}
