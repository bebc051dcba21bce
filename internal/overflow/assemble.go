package overflow

// Overflow is the content of the disclosure menu: the flattened hidden
// promoted actions first, then every secondary section in caller order.
type Overflow struct {
	Sections []Section
}

// Items flattens every section into one ordered list of leaf actions.
func (o Overflow) Items() []Action {
	total := 0
	for _, s := range o.Sections {
		total += len(s.Items)
	}
	if total == 0 {
		return nil
	}
	items := make([]Action, 0, total)
	for _, s := range o.Sections {
		items = append(items, s.Items...)
	}
	return items
}

// Len counts leaf actions across all sections.
func (o Overflow) Len() int {
	n := 0
	for _, s := range o.Sections {
		n += len(s.Items)
	}
	return n
}

// Empty reports whether there is nothing to put behind the disclosure.
func (o Overflow) Empty() bool {
	return o.Len() == 0
}

// Assemble rebuilds the overflow menu from the hidden indices. Hidden groups
// are spliced in as their sub-actions. Indices outside promoted are skipped.
// No deduplication happens against the secondary sections.
func Assemble(promoted []Promoted, hidden []int, secondary []Secondary) Overflow {
	var out Overflow
	var merged []Action
	for _, idx := range hidden {
		if idx < 0 || idx >= len(promoted) {
			continue
		}
		merged = append(merged, promoted[idx].Leaves()...)
	}
	if len(merged) > 0 {
		out.Sections = append(out.Sections, Section{Items: merged})
	}
	for _, entry := range secondary {
		section := entry.Section()
		if len(section.Items) == 0 {
			continue
		}
		out.Sections = append(out.Sections, section)
	}
	return out
}

// Select maps indices to promoted entries, skipping out-of-range indices.
func Select(promoted []Promoted, indices []int) []Promoted {
	if len(indices) == 0 {
		return nil
	}
	out := make([]Promoted, 0, len(indices))
	for _, idx := range indices {
		if idx < 0 || idx >= len(promoted) {
			continue
		}
		out = append(out, promoted[idx])
	}
	return out
}
