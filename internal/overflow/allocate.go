package overflow

// Allocation partitions the promoted indices. Both slices are strictly
// increasing and together cover 0..n-1 exactly once.
type Allocation struct {
	Visible []int
	Hidden  []int
}

// Len is the number of indices covered by the allocation.
func (a Allocation) Len() int {
	return len(a.Visible) + len(a.Hidden)
}

// Overflowing reports whether the disclosure control is required.
func (a Allocation) Overflowing() bool {
	return len(a.Hidden) > 0
}

// Equal compares two allocations index by index.
func (a Allocation) Equal(o Allocation) bool {
	return equalInts(a.Visible, o.Visible) && equalInts(a.Hidden, o.Hidden)
}

func (a Allocation) clone() Allocation {
	return Allocation{Visible: cloneInts(a.Visible), Hidden: cloneInts(a.Hidden)}
}

// AllHidden is the allocation used before the first measurement lands.
func AllHidden(n int) Allocation {
	if n <= 0 {
		return Allocation{}
	}
	return Allocation{Hidden: indexRange(0, n)}
}

// ComputeVisibility walks widths in priority order and keeps the longest
// prefix that fits containerWidth. When everything fits no room is reserved
// for the disclosure control; otherwise the prefix must also leave
// disclosureWidth free. An exact fill counts as fitting.
func ComputeVisibility(widths []int, disclosureWidth, containerWidth int) Allocation {
	n := len(widths)
	if n == 0 {
		return Allocation{}
	}
	if disclosureWidth < 0 {
		disclosureWidth = 0
	}

	total := 0
	for _, w := range widths {
		total += clampWidth(w)
	}
	if total <= containerWidth {
		return Allocation{Visible: indexRange(0, n)}
	}

	budget := containerWidth - disclosureWidth
	k := 0
	running := 0
	for k < n {
		next := running + clampWidth(widths[k])
		if next > budget {
			break
		}
		running = next
		k++
	}
	// k < n here: a full prefix would have passed the total check above.
	return Allocation{Visible: indexRange(0, k), Hidden: indexRange(k, n)}
}

func clampWidth(w int) int {
	if w < 0 {
		return 0
	}
	return w
}

func indexRange(from, to int) []int {
	if to <= from {
		return nil
	}
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneInts(in []int) []int {
	if len(in) == 0 {
		return nil
	}
	dup := make([]int, len(in))
	copy(dup, in)
	return dup
}
