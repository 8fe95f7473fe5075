package tags

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"tag-manager/core/reconcile"
	"tag-manager/core/utils"
)

// Record fields understood by the tag adapter, besides Name and Address_<n>.
const (
	FieldGroup           = "Group"
	FieldDescription     = "Description"
	FieldDataType        = "DataType"
	FieldAccessRight     = "AccessRight"
	FieldPollGroup       = "PollGroup"
	FieldLogToAuditTrail = "LogToAuditTrail"
)

// groupSeparator joins group and short name into the full tag name.
const groupSeparator = "."

// Adapter implements reconcile.Adapter for tags of one project.
type Adapter struct {
	project string
}

// NewAdapter creates a tag adapter. New tags are created in project.
func NewAdapter(project string) *Adapter {
	return &Adapter{project: project}
}

// Name returns the adapter name.
func (a *Adapter) Name() string {
	return "tags"
}

// FullName returns "<Group>.<Name>", or the bare name for ungrouped tags.
func (a *Adapter) FullName(rec reconcile.Record) string {
	name := rec.Name()
	group := strings.TrimSpace(rec.Get(FieldGroup))
	if group == "" || name == "" {
		return name
	}
	return group + groupSeparator + name
}

// ShortName returns the record's name without its group.
func (a *Adapter) ShortName(rec reconcile.Record) string {
	return rec.Name()
}

// SetShortName returns a copy of rec named name.
func (a *Adapter) SetShortName(rec reconcile.Record, name string) reconcile.Record {
	out := rec.Clone()
	out[reconcile.FieldName] = name
	return out
}

// New creates an empty tag in the adapter's project.
func (a *Adapter) New() *Tag {
	return &Tag{Project: a.project}
}

// Validate rejects records that would produce an unusable tag.
// The automatic import rules do not affect tag validity.
func (a *Adapter) Validate(rec reconcile.Record, _ string) error {
	if strings.Contains(rec.Name(), groupSeparator) {
		return fmt.Errorf("name %q must not contain %q, use the %s field", rec.Name(), groupSeparator, FieldGroup)
	}
	if dt := strings.ToLower(strings.TrimSpace(rec.Get(FieldDataType))); dt != "" && !slices.Contains(DataTypes, dt) {
		return fmt.Errorf("unknown data type %q", rec.Get(FieldDataType))
	}
	if pg := strings.TrimSpace(rec.Get(FieldPollGroup)); pg != "" {
		if n, err := strconv.Atoi(pg); err != nil || n < 0 {
			return fmt.Errorf("poll group %q is not a non-negative number", pg)
		}
	}
	if rights, ok := rec.Indexed(FieldAccessRight); ok {
		for _, r := range rights {
			if _, err := ParseAccessRight(r); err != nil {
				return err
			}
		}
	}
	addresses, _ := rec.Indexed(reconcile.FieldAddress)
	for _, address := range append(addresses, rec.Get(reconcile.FieldAddress)) {
		if strings.ContainsAny(address, "*"+reconcile.RuleSeparator) {
			return fmt.Errorf("address %q contains a rule character", address)
		}
	}
	return nil
}

// Apply copies the record's properties into tag. With overwrite false, empty values
// keep the tag's values and access rights are filled per controller.
func (a *Adapter) Apply(tag *Tag, rec reconcile.Record, overwrite bool) {
	if v, ok := value(rec, FieldGroup, overwrite); ok {
		tag.Group = v
	}
	if v, ok := value(rec, FieldDescription, overwrite); ok {
		tag.Description = v
	}
	if v, ok := value(rec, FieldDataType, overwrite); ok {
		tag.DataType = strings.ToLower(v)
	}
	if v, ok := value(rec, FieldPollGroup, overwrite); ok {
		tag.PollGroup = utils.ToInt(v)
	}
	if v, ok := value(rec, FieldLogToAuditTrail, overwrite); ok {
		tag.LogToAuditTrail = utils.ToBool(v)
	}

	rights, ok := rec.Indexed(FieldAccessRight)
	if !ok {
		return
	}
	if overwrite {
		tag.AccessRights = nil
		if slices.ContainsFunc(rights, func(r string) bool { return r != "" }) {
			tag.AccessRights = make([]AccessRight, len(rights))
			for i, r := range rights {
				tag.AccessRights[i], _ = ParseAccessRight(r)
			}
		}
		return
	}
	for i, r := range rights {
		if r == "" {
			continue
		}
		for len(tag.AccessRights) <= i {
			tag.AccessRights = append(tag.AccessRights, AccessNone)
		}
		tag.AccessRights[i], _ = ParseAccessRight(r)
	}
}

// value returns the trimmed value of key when it should be written.
func value(rec reconcile.Record, key string, overwrite bool) (string, bool) {
	if !rec.Has(key) {
		return "", false
	}
	v := strings.TrimSpace(rec.Get(key))
	if v == "" && !overwrite {
		return "", false
	}
	return v, true
}

// ToRecord renders a tag as an import record, the inverse of Apply.
func ToRecord(tag *Tag) reconcile.Record {
	rec := reconcile.Record{
		reconcile.FieldName:  strings.TrimPrefix(tag.Name, tag.Group+groupSeparator),
		FieldGroup:           tag.Group,
		FieldDescription:     tag.Description,
		FieldDataType:        tag.DataType,
		FieldPollGroup:       strconv.Itoa(tag.PollGroup),
		FieldLogToAuditTrail: strconv.FormatBool(tag.LogToAuditTrail),
	}
	if tag.Group == "" {
		rec[reconcile.FieldName] = tag.Name
	}
	for i, address := range tag.Addresses {
		rec[reconcile.IndexedKey(reconcile.FieldAddress, i)] = address
	}
	for i, r := range tag.AccessRights {
		rec[reconcile.IndexedKey(FieldAccessRight, i)] = string(r)
	}
	return rec
}
