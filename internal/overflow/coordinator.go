package overflow

import "github.com/google/uuid"

// Phase is the recomputation state of a Coordinator.
type Phase int

const (
	// PhaseUnmeasured: no usable measurement has been applied yet.
	PhaseUnmeasured Phase = iota
	// PhaseMeasured: the allocation matches the latest measurement.
	PhaseMeasured
	// PhaseStale: the action list changed and awaits its measurement.
	PhaseStale
)

func (p Phase) String() string {
	switch p {
	case PhaseUnmeasured:
		return "unmeasured"
	case PhaseMeasured:
		return "measured"
	case PhaseStale:
		return "stale"
	default:
		return "unknown"
	}
}

// Snapshot is the consumer view of a Coordinator.
type Snapshot struct {
	ListID     string
	Phase      Phase
	Allocation Allocation
	Settled    bool
}

// Coordinator owns the latest measurement and allocation for one bar. It is
// not safe for concurrent use; the Bubble Tea model that owns it serialises
// every call through Update.
type Coordinator struct {
	actions     []Promoted
	listID      string
	phase       Phase
	measurement MeasurementSet
	measured    bool
	allocation  Allocation
	settled     bool

	newID func() string
}

// NewCoordinator returns a coordinator with an empty action list.
func NewCoordinator() *Coordinator {
	return &Coordinator{newID: uuid.NewString}
}

// SetActions installs the promoted list. A list equal in content to the
// current one keeps its identity and allocation. A different list gets a new
// identity and falls back to all-hidden until a measurement for it lands.
func (c *Coordinator) SetActions(actions []Promoted) (string, bool) {
	if c.listID != "" && sameActions(c.actions, actions) {
		return c.listID, false
	}
	c.actions = clonePromoted(actions)
	c.listID = c.newID()
	c.measured = false
	c.measurement = MeasurementSet{}
	if len(c.actions) == 0 {
		c.allocation = Allocation{}
		if c.phase != PhaseUnmeasured {
			c.phase = PhaseMeasured
		}
		return c.listID, true
	}
	c.allocation = AllHidden(len(c.actions))
	if c.phase != PhaseUnmeasured {
		c.phase = PhaseStale
	}
	return c.listID, true
}

// Apply folds a measurement into the coordinator and reports whether the
// allocation was recomputed. Sets measured for a previous list are dropped,
// and unmeasured or zero-width containers keep the prior allocation.
func (c *Coordinator) Apply(ms MeasurementSet) bool {
	if ms.ListID == "" || ms.ListID != c.listID {
		return false
	}
	if len(c.actions) == 0 || !ms.Measurable() {
		return false
	}
	if c.measured && c.measurement.sameInputs(ms) {
		return false
	}
	widths := ms.Widths
	if len(widths) != len(c.actions) {
		widths = fitWidths(widths, len(c.actions), ms.ContainerWidth)
	}
	allocation := ComputeVisibility(widths, ms.DisclosureWidth, ms.ContainerWidth)

	c.measurement = ms.clone()
	c.measured = true
	c.allocation = allocation
	c.settled = true
	c.phase = PhaseMeasured
	return true
}

// Snapshot returns a copy of the current state.
func (c *Coordinator) Snapshot() Snapshot {
	return Snapshot{
		ListID:     c.listID,
		Phase:      c.phase,
		Allocation: c.allocation.clone(),
		Settled:    c.settled,
	}
}

// Actions returns the installed promoted list.
func (c *Coordinator) Actions() []Promoted {
	return clonePromoted(c.actions)
}

// ListID returns the identity of the installed list.
func (c *Coordinator) ListID() string {
	return c.listID
}

// Measurement returns the last applied measurement, if any.
func (c *Coordinator) Measurement() (MeasurementSet, bool) {
	if !c.measured {
		return MeasurementSet{}, false
	}
	return c.measurement.clone(), true
}

// fitWidths pads a short widths slice so the missing entries never fit and
// trims a long one, keeping the partition total over the installed list.
func fitWidths(widths []int, n, containerWidth int) []int {
	out := make([]int, n)
	for i := range out {
		if i < len(widths) {
			out[i] = widths[i]
			continue
		}
		out[i] = containerWidth + 1
	}
	return out
}

func sameActions(a, b []Promoted) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func clonePromoted(in []Promoted) []Promoted {
	if len(in) == 0 {
		return nil
	}
	dup := make([]Promoted, len(in))
	copy(dup, in)
	return dup
}
