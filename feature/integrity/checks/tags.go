package checks

import (
	"sort"

	"tag-manager/feature/tags"
)

// TagReport is the health of one project's tag list.
type TagReport struct {
	Project string `json:"project"`
	Count   int    `json:"count"`
	// Collisions lists addresses used by more than one tag on the same controller.
	Collisions []AddressCollision `json:"collisions"`
	// Unaddressed lists tags without an address on any controller.
	Unaddressed []string `json:"unaddressed"`
	// Invalid lists tags that would be rejected if imported again.
	Invalid []InvalidTag `json:"invalid"`
}

// AddressCollision is one address shared by several tags.
type AddressCollision struct {
	Controller int      `json:"controller"`
	Address    string   `json:"address"`
	Tags       []string `json:"tags"`
}

// InvalidTag is a stored tag that fails import validation.
type InvalidTag struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// OK reports whether the check found nothing to fix.
func (r *TagReport) OK() bool {
	return len(r.Collisions) == 0 && len(r.Unaddressed) == 0 && len(r.Invalid) == 0
}

// CheckTags inspects the tags of a project. Collisions are sorted by controller and address.
func CheckTags(project string, list []*tags.Tag) *TagReport {
	report := &TagReport{
		Project:     project,
		Count:       len(list),
		Collisions:  []AddressCollision{},
		Unaddressed: []string{},
		Invalid:     []InvalidTag{},
	}

	type key struct {
		controller int
		address    string
	}
	owners := make(map[key][]string)
	adapter := tags.NewAdapter(project)

	for _, tag := range list {
		addressed := false
		for ci, address := range tag.Addresses {
			if address == "" {
				continue
			}
			addressed = true
			k := key{ci, address}
			owners[k] = append(owners[k], tag.Name)
		}
		if !addressed {
			report.Unaddressed = append(report.Unaddressed, tag.Name)
		}
		if err := adapter.Validate(tags.ToRecord(tag), ""); err != nil {
			report.Invalid = append(report.Invalid, InvalidTag{Name: tag.Name, Error: err.Error()})
		}
	}

	for k, names := range owners {
		if len(names) > 1 {
			report.Collisions = append(report.Collisions, AddressCollision{Controller: k.controller, Address: k.address, Tags: names})
		}
	}
	sort.Slice(report.Collisions, func(i, j int) bool {
		a, b := report.Collisions[i], report.Collisions[j]
		if a.Controller != b.Controller {
			return a.Controller < b.Controller
		}
		return a.Address < b.Address
	})
	return report
}
