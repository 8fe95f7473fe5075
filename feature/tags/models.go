package tags

import (
	"fmt"
	"strings"
	"time"
)

// AccessRight is the access a client has to a tag on one controller.
type AccessRight string

// Access rights accepted in import files.
const (
	// AccessNone denies all access.
	AccessNone AccessRight = "none"
	// AccessRead allows reading the tag.
	AccessRead AccessRight = "read"
	// AccessWrite allows writing the tag.
	AccessWrite AccessRight = "write"
	// AccessReadWrite allows both.
	AccessReadWrite AccessRight = "read_write"
)

// ParseAccessRight converts an import value to an AccessRight.
// Matching is case-insensitive; "r", "w" and "rw" are accepted as short forms.
func ParseAccessRight(s string) (AccessRight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return AccessNone, nil
	case "read", "r":
		return AccessRead, nil
	case "write", "w":
		return AccessWrite, nil
	case "read_write", "readwrite", "rw":
		return AccessReadWrite, nil
	default:
		return "", fmt.Errorf("unknown access right %q", s)
	}
}

// DataTypes lists the accepted tag data types.
var DataTypes = []string{"bool", "byte", "int", "dint", "word", "dword", "real", "lreal", "string"}

// Tag is a named variable of a project, bound to one address per controller.
type Tag struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Project string `gorm:"size:120;not null;uniqueIndex:idx_tags_project_name" json:"project"`
	// Name is the full name ("<Group>.<Name>" for grouped tags).
	Name            string        `gorm:"size:255;not null;uniqueIndex:idx_tags_project_name" json:"name"`
	Group           string        `gorm:"column:tag_group;size:120" json:"group,omitempty"`
	Description     string        `gorm:"size:512" json:"description,omitempty"`
	DataType        string        `gorm:"size:32" json:"data_type,omitempty"`
	Addresses       []string      `gorm:"type:text;serializer:json" json:"addresses"`
	AccessRights    []AccessRight `gorm:"type:text;serializer:json" json:"access_rights,omitempty"`
	PollGroup       int           `json:"poll_group"`
	LogToAuditTrail bool          `json:"log_to_audit_trail"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// TableName overrides the table name used by Tag to `tags`.
func (Tag) TableName() string {
	return "tags"
}

// GetName returns the full tag name.
func (t *Tag) GetName() string { return t.Name }

// SetName replaces the full tag name.
func (t *Tag) SetName(name string) { t.Name = name }

// AddressCount returns the number of controller address slots.
func (t *Tag) AddressCount() int { return len(t.Addresses) }

// GetAddress returns the address on a 0-based controller, "" if unset.
func (t *Tag) GetAddress(controller int) string {
	if controller < 0 || controller >= len(t.Addresses) {
		return ""
	}
	return t.Addresses[controller]
}

// SetAddress writes the address on one controller, growing the slot list as needed.
func (t *Tag) SetAddress(controller int, address string) {
	if controller < 0 {
		return
	}
	for len(t.Addresses) <= controller {
		t.Addresses = append(t.Addresses, "")
	}
	t.Addresses[controller] = address
}
