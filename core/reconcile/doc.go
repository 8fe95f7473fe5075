// Package reconcile provides the import reconciliation engine: it merges a list of
// flat imported records (property bags) into a list of existing domain items.
//
// For every imported record the engine decides one MergeAction (Add, Merge,
// OverWrite, Skip or ChangeName); with DeleteUnused set, existing items the import
// did not touch are flagged Delete.
//
// # Architecture
//
// The engine consists of four parts:
//
// 1. MatchIndex: name and per-container address lookups over the existing items,
// built once per pass and extended with the items the pass plans to create.
//
// 2. Rules: automatic import rules ("TagB* | *C* | *4"), wildcard patterns matched
// against every container address of a record.
//
// 3. Resolver: the decision table. Address collisions (CompareAddresses) are skipped,
// name matches are merged (or handed to the ConflictFunc in ModeDefault), new
// records are added when a rule matches or no rules are configured.
//
// 4. Plan / Apply: Plan resolves all records without side effects; Apply mutates the
// existing items in place and appends the new ones. MergeLists runs both, with an
// optional verification hook in between.
//
// # Adapters
//
// The engine is generic over the item type. An Adapter supplies the model-specific
// hooks: naming, construction, validation and copying record properties into an item.
// See feature/tags for the tag adapter.
//
// # Usage Example
//
//	engine := reconcile.NewEngine[*tags.Tag](tags.NewAdapter(), reconcile.Hooks[*tags.Tag]{}, logger)
//	plan, err := engine.MergeLists(ctx, existing, records, reconcile.ModeSilent, reconcile.Settings{
//	    ControllerIndex:      0,
//	    CompareAddresses:     true,
//	    AutomaticImportRules: "DB10.*",
//	})
//	for _, d := range plan.Imported() {
//	    fmt.Println(d.Name, d.Action)
//	}
package reconcile
