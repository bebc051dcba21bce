package overflow

// Unmeasured marks a container whose width is not known yet.
const Unmeasured = -1

// MeasurementSet is the output of one measurement pass.
type MeasurementSet struct {
	ListID          string
	Widths          []int
	DisclosureWidth int
	ContainerWidth  int
}

// Measurable reports whether the container width can drive an allocation.
// Unmeasured and zero-width containers cannot.
func (m MeasurementSet) Measurable() bool {
	return m.ContainerWidth > 0
}

func (m MeasurementSet) clone() MeasurementSet {
	m.Widths = cloneInts(m.Widths)
	return m
}

func (m MeasurementSet) sameInputs(o MeasurementSet) bool {
	return m.ListID == o.ListID &&
		m.DisclosureWidth == o.DisclosureWidth &&
		m.ContainerWidth == o.ContainerWidth &&
		equalInts(m.Widths, o.Widths)
}
