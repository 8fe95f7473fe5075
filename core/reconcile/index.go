package reconcile

// MatchIndex provides name and per-container address lookups over the items of one pass.
// Items are referred to by slot: slots [0, len(items)) are the existing items in list
// order, higher slots are items planned for creation during the pass.
type MatchIndex struct {
	byName    map[string]int
	byAddress []map[string]int
	// addresses[container][slot] is the address the slot currently holds.
	addresses [][]string
	names     []string
}

// NewMatchIndex indexes items for the given number of containers.
// Duplicate names or addresses resolve to the first item holding them.
func NewMatchIndex[T Item](items []T, containers int) *MatchIndex {
	if containers < 0 {
		containers = 0
	}
	x := &MatchIndex{
		byName:    make(map[string]int, len(items)),
		byAddress: make([]map[string]int, containers),
		addresses: make([][]string, containers),
		names:     make([]string, 0, len(items)),
	}
	for c := range x.byAddress {
		x.byAddress[c] = make(map[string]int, len(items))
		x.addresses[c] = make([]string, 0, len(items))
	}
	for _, item := range items {
		slot := x.add(item.GetName())
		for c := 0; c < containers; c++ {
			x.setAddress(slot, c, item.GetAddress(c))
		}
	}
	return x
}

// Len returns the number of slots, existing and planned.
func (x *MatchIndex) Len() int {
	return len(x.names)
}

// Containers returns the number of indexed containers.
func (x *MatchIndex) Containers() int {
	return len(x.byAddress)
}

// FindByName returns the slot of the item with exactly this name.
func (x *MatchIndex) FindByName(name string) (int, bool) {
	slot, ok := x.byName[name]
	return slot, ok
}

// FindByAddress returns the slot of the item holding address in container.
// An empty address never matches.
func (x *MatchIndex) FindByAddress(container int, address string) (int, bool) {
	if address == "" || container < 0 || container >= len(x.byAddress) {
		return 0, false
	}
	slot, ok := x.byAddress[container][address]
	return slot, ok
}

// NameOf returns the name held by slot.
func (x *MatchIndex) NameOf(slot int) string {
	if slot < 0 || slot >= len(x.names) {
		return ""
	}
	return x.names[slot]
}

// AddressOf returns the address slot holds in container.
func (x *MatchIndex) AddressOf(slot, container int) string {
	if container < 0 || container >= len(x.addresses) || slot < 0 || slot >= len(x.addresses[container]) {
		return ""
	}
	return x.addresses[container][slot]
}

// AddPending registers an item that the pass will create, so later records see it.
func (x *MatchIndex) AddPending(name string, container int, address string) int {
	slot := x.add(name)
	x.MoveAddress(slot, container, address)
	return slot
}

// MoveAddress records that slot now holds address in container.
func (x *MatchIndex) MoveAddress(slot, container int, address string) {
	if container < 0 || container >= len(x.addresses) || slot < 0 || slot >= len(x.names) {
		return
	}
	if old := x.addresses[container][slot]; old != "" {
		if owner, ok := x.byAddress[container][old]; ok && owner == slot {
			delete(x.byAddress[container], old)
			x.addresses[container][slot] = ""
			x.reindex(container, old)
		}
	}
	x.setAddress(slot, container, address)
}

// reindex points address at the first slot that still holds it in container.
func (x *MatchIndex) reindex(container int, address string) {
	for s, a := range x.addresses[container] {
		if a == address {
			x.byAddress[container][address] = s
			return
		}
	}
}

func (x *MatchIndex) add(name string) int {
	slot := len(x.names)
	x.names = append(x.names, name)
	for c := range x.addresses {
		x.addresses[c] = append(x.addresses[c], "")
	}
	if _, exists := x.byName[name]; !exists {
		x.byName[name] = slot
	}
	return slot
}

func (x *MatchIndex) setAddress(slot, container int, address string) {
	x.addresses[container][slot] = address
	if address == "" {
		return
	}
	if _, exists := x.byAddress[container][address]; !exists {
		x.byAddress[container][address] = slot
	}
}
