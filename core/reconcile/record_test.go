package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Address(t *testing.T) {
	rec := Record{FieldName: " Tag1 ", "Address_1": " DB1.X0 ", "Address_3": "DB3.X0"}

	assert.Equal(t, "Tag1", rec.Name())
	assert.Equal(t, "DB1.X0", rec.Address(0))
	assert.Equal(t, "", rec.Address(1))
	assert.Equal(t, "DB3.X0", rec.Address(2))
	assert.True(t, rec.HasAddress(0))
	assert.False(t, rec.HasAddress(1))
	assert.Equal(t, []string{"DB1.X0", "", "DB3.X0"}, rec.Addresses(3))
	assert.Nil(t, rec.Addresses(0))

	bare := Record{FieldName: "Tag2", FieldAddress: "DB2.X0"}
	assert.Equal(t, "DB2.X0", bare.Address(0))
	assert.Equal(t, "DB2.X0", bare.Address(1))
	assert.True(t, bare.HasAddress(4))
	assert.Equal(t, []string{"", "DB2.X0"}, bare.Addresses(1))
}

func TestRecord_Indexed(t *testing.T) {
	rec := Record{
		"AccessRight_1": "read",
		"AccessRight_3": " write ",
		"AccessRight_x": "ignored",
		"AccessRight_0": "ignored",
		"AccessRights":  "ignored",
	}

	values, ok := rec.Indexed("AccessRight")
	assert.True(t, ok)
	assert.Equal(t, []string{"read", "", "write"}, values)

	values, ok = rec.Indexed("Address")
	assert.False(t, ok)
	assert.Nil(t, values)
}

func TestRecord_CloneAndKeys(t *testing.T) {
	rec := Record{"b": "2", "a": "1"}
	c := rec.Clone()
	c["a"] = "changed"

	assert.Equal(t, "1", rec.Get("a"))
	assert.Equal(t, []string{"a", "b"}, rec.Keys())
	assert.False(t, rec.Has("c"))
	assert.Equal(t, "Address_2", IndexedKey(FieldAddress, 1))
}

func TestParseModeAndAction(t *testing.T) {
	m, err := ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, ModeDefault, m)

	m, err = ParseMode("silent")
	assert.NoError(t, err)
	assert.Equal(t, ModeSilent, m)

	_, err = ParseMode("loud")
	assert.Error(t, err)

	a, err := ParseMergeAction("change_name")
	assert.NoError(t, err)
	assert.Equal(t, ActionChangeName, a)
	assert.True(t, a.IsImport())
	assert.False(t, ActionDelete.IsImport())

	_, err = ParseMergeAction("rename")
	assert.Error(t, err)
}

func TestConfig_Settings(t *testing.T) {
	cfg := Config{ControllerCount: 2, ControllerIndex: 1, Rules: "DB*", Verify: true, DeleteUnused: true}
	s := cfg.Settings()

	assert.Equal(t, 1, s.ControllerIndex)
	assert.Equal(t, 2, s.ControllerCount)
	assert.Equal(t, "DB*", s.AutomaticImportRules)
	assert.True(t, s.UseVerificationDialog)
	assert.True(t, s.DeleteUnused)
	assert.NoError(t, s.Validate())
}
