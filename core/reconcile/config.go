package reconcile

// Config holds the import defaults loaded by core/config.
type Config struct {
	// ControllerCount is the number of configured controllers (address slots per tag).
	ControllerCount int `mapstructure:"controller_count" default:"1"`
	// ControllerIndex is the 0-based controller an import targets.
	ControllerIndex int `mapstructure:"controller_index" default:"0"`
	// Mode is "default" (interactive) or "silent".
	Mode string `mapstructure:"mode" default:"default"`
	// Rules is the automatic import rule string, e.g. "DB10.* | *.X0".
	Rules string `mapstructure:"rules" default:""`
	// CompareAddresses skips records whose address belongs to another tag.
	CompareAddresses bool `mapstructure:"compare_addresses" default:"false"`
	// DeleteUnused flags tags missing from the import as deleted.
	DeleteUnused bool `mapstructure:"delete_unused" default:"false"`
	// ReportUntouched reports tags the import did not touch.
	ReportUntouched bool `mapstructure:"report_untouched" default:"false"`
	// Verify asks for confirmation of the plan before it is applied.
	Verify bool `mapstructure:"verify" default:"false"`
	// ApplyDeletes removes flagged tags from the database when saving.
	ApplyDeletes bool `mapstructure:"apply_deletes" default:"false"`
}

// Settings converts the configuration to pass settings.
func (c Config) Settings() Settings {
	return Settings{
		ControllerIndex:       c.ControllerIndex,
		ControllerCount:       c.ControllerCount,
		DeleteUnused:          c.DeleteUnused,
		CompareAddresses:      c.CompareAddresses,
		UseVerificationDialog: c.Verify,
		AutomaticImportRules:  c.Rules,
		ReportUntouched:       c.ReportUntouched,
	}
}
