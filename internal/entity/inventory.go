package entity

// Stack is a quantity of one item kind in an inventory. The unit weight is
// cached at add time so weight math never needs a registry lookup.
type Stack struct {
	Kind       string
	Quantity   int
	UnitWeight float64
}

// Weight returns the total carry weight of the stack.
func (s Stack) Weight() float64 {
	return float64(s.Quantity) * s.UnitWeight
}

// Inventory is a bounded, ordered collection of item stacks. Insertion order
// is preserved so deposits drain stacks deterministically.
type Inventory struct {
	stacks    []Stack
	maxWeight float64
}

// NewInventory creates an empty inventory with the given weight capacity.
func NewInventory(maxWeight float64) *Inventory {
	return &Inventory{maxWeight: maxWeight}
}

// MaxWeight returns the inventory's weight capacity.
func (inv *Inventory) MaxWeight() float64 {
	return inv.maxWeight
}

// Add merges qty units of kind into the inventory, merging into an existing
// stack of the same kind if present. Units that would push total weight past
// capacity are rejected; the rejected quantity is returned so the caller can
// apply its overflow policy (drop on the ground, leave on the node, ...).
func (inv *Inventory) Add(kind string, qty int, unitWeight float64) (rejected int) {
	if qty <= 0 {
		return 0
	}

	accepted := qty
	if unitWeight > 0 {
		room := inv.maxWeight - inv.TotalWeight()
		fits := int(room / unitWeight)
		if fits < accepted {
			accepted = fits
		}
	}
	if accepted <= 0 {
		return qty
	}

	for i := range inv.stacks {
		if inv.stacks[i].Kind == kind {
			inv.stacks[i].Quantity += accepted
			return qty - accepted
		}
	}
	inv.stacks = append(inv.stacks, Stack{Kind: kind, Quantity: accepted, UnitWeight: unitWeight})
	return qty - accepted
}

// Remove takes up to qty units of kind out of the inventory and returns the
// quantity actually removed. Emptied stacks are dropped from the sequence.
func (inv *Inventory) Remove(kind string, qty int) (removed int) {
	if qty <= 0 {
		return 0
	}
	for i := range inv.stacks {
		if inv.stacks[i].Kind != kind {
			continue
		}
		removed = qty
		if removed > inv.stacks[i].Quantity {
			removed = inv.stacks[i].Quantity
		}
		inv.stacks[i].Quantity -= removed
		if inv.stacks[i].Quantity == 0 {
			inv.stacks = append(inv.stacks[:i], inv.stacks[i+1:]...)
		}
		return removed
	}
	return 0
}

// Quantity returns how many units of kind the inventory holds.
func (inv *Inventory) Quantity(kind string) int {
	for _, s := range inv.stacks {
		if s.Kind == kind {
			return s.Quantity
		}
	}
	return 0
}

// TotalWeight sums stack weights. Recomputed on demand rather than cached so
// it is always consistent after any add/remove.
func (inv *Inventory) TotalWeight() float64 {
	total := 0.0
	for _, s := range inv.stacks {
		total += s.Weight()
	}
	return total
}

// Stacks returns the stacks in insertion order. The returned slice is a copy;
// mutate through Add/Remove only.
func (inv *Inventory) Stacks() []Stack {
	out := make([]Stack, len(inv.stacks))
	copy(out, inv.stacks)
	return out
}

// IsEmpty reports whether the inventory holds no items.
func (inv *Inventory) IsEmpty() bool {
	return len(inv.stacks) == 0
}

// FillRatio returns carried weight as a fraction of capacity (0 when the
// capacity itself is zero).
func (inv *Inventory) FillRatio() float64 {
	if inv.maxWeight <= 0 {
		return 0
	}
	return inv.TotalWeight() / inv.maxWeight
}
