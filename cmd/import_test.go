package cmd

import (
	"testing"

	"tag-manager/core/reconcile"
	"tag-manager/feature/tags"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func parseImportFlags(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "import"}
	bindImportFlags(c.Flags())
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestImportOptions(t *testing.T) {
	defaults := reconcile.Config{
		ControllerCount:  2,
		ControllerIndex:  1,
		Mode:             "default",
		Rules:            "DB*",
		CompareAddresses: true,
		Verify:           true,
	}

	tests := []struct {
		name   string
		args   []string
		check  func(t *testing.T, opts tags.ImportOptions)
		hasErr bool
	}{
		{
			name: "defaults kept when no flag is set",
			check: func(t *testing.T, opts tags.ImportOptions) {
				assert.Equal(t, reconcile.ModeDefault, opts.Mode)
				assert.Equal(t, 1, opts.Settings.ControllerIndex)
				assert.Equal(t, "DB*", opts.Settings.AutomaticImportRules)
				assert.True(t, opts.Settings.CompareAddresses)
				assert.NotNil(t, opts.Hooks.Conflict)
				assert.NotNil(t, opts.Hooks.Verify)
			},
		},
		{
			name: "changed flags override",
			args: []string{"--mode", "silent", "--controller", "0", "--rules", "", "--compare-addresses=false", "--dry-run"},
			check: func(t *testing.T, opts tags.ImportOptions) {
				assert.Equal(t, reconcile.ModeSilent, opts.Mode)
				assert.Equal(t, 0, opts.Settings.ControllerIndex)
				assert.Empty(t, opts.Settings.AutomaticImportRules)
				assert.False(t, opts.Settings.CompareAddresses)
				assert.True(t, opts.DryRun)
				assert.Nil(t, opts.Hooks.Conflict)
			},
		},
		{
			name: "yes disables the verification",
			args: []string{"--yes"},
			check: func(t *testing.T, opts tags.ImportOptions) {
				assert.False(t, opts.Settings.UseVerificationDialog)
				assert.Nil(t, opts.Hooks.Verify)
			},
		},
		{
			name: "applying deletes forces the verification",
			args: []string{"--verify=false", "--delete-unused", "--apply-deletes"},
			check: func(t *testing.T, opts tags.ImportOptions) {
				assert.True(t, opts.ApplyDeletes)
				assert.True(t, opts.Settings.DeleteUnused)
				assert.True(t, opts.Settings.UseVerificationDialog)
				assert.NotNil(t, opts.Hooks.Verify)
			},
		},
		{name: "unknown mode", args: []string{"--mode", "loud"}, hasErr: true},
		{name: "controller out of range", args: []string{"--controller", "2"}, hasErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := parseImportFlags(t, tt.args...)
			svc := tags.NewService(nil, "tags", zap.NewNop(), nil, defaults)

			opts, err := importOptions(c, svc, zap.NewNop())
			if tt.hasErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestRecordSummary(t *testing.T) {
	rec := reconcile.Record{"Name": "T1", "Address_1": "DB1.X0", "Description": "", "DataType": "bool"}
	assert.Equal(t, "Address_1=DB1.X0  DataType=bool", recordSummary(rec))
}
