package overflow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator() *Coordinator {
	c := NewCoordinator()
	seq := 0
	c.newID = func() string {
		seq++
		return fmt.Sprintf("list-%d", seq)
	}
	return c
}

func threeActions() []Promoted {
	return []Promoted{
		Simple(Action{ID: "a", Label: "Alpha"}),
		Simple(Action{ID: "b", Label: "Beta"}),
		Grouped("More", Action{ID: "c1", Label: "C1"}, Action{ID: "c2", Label: "C2"}),
	}
}

func TestCoordinatorStartsUnmeasuredWithEverythingHidden(t *testing.T) {
	c := newTestCoordinator()
	id, changed := c.SetActions(threeActions())
	require.True(t, changed)
	assert.Equal(t, "list-1", id)

	snap := c.Snapshot()
	assert.Equal(t, PhaseUnmeasured, snap.Phase)
	assert.False(t, snap.Settled)
	assert.Equal(t, []int{0, 1, 2}, snap.Allocation.Hidden)
	assert.Empty(t, snap.Allocation.Visible)
}

func TestCoordinatorAppliesMeasurementAndSettles(t *testing.T) {
	c := newTestCoordinator()
	id, _ := c.SetActions(threeActions())

	applied := c.Apply(MeasurementSet{ListID: id, Widths: []int{100, 100, 100}, DisclosureWidth: 40, ContainerWidth: 250})
	require.True(t, applied)

	snap := c.Snapshot()
	assert.Equal(t, PhaseMeasured, snap.Phase)
	assert.True(t, snap.Settled)
	assert.Equal(t, []int{0, 1}, snap.Allocation.Visible)
	assert.Equal(t, []int{2}, snap.Allocation.Hidden)

	assert.False(t, c.Apply(MeasurementSet{ListID: id, Widths: []int{100, 100, 100}, DisclosureWidth: 40, ContainerWidth: 250}),
		"identical inputs must not recompute")

	require.True(t, c.Apply(MeasurementSet{ListID: id, Widths: []int{100, 100, 100}, DisclosureWidth: 40, ContainerWidth: 400}))
	assert.Equal(t, []int{0, 1, 2}, c.Snapshot().Allocation.Visible)
}

func TestCoordinatorDefersOnUnmeasuredOrZeroContainer(t *testing.T) {
	c := newTestCoordinator()
	id, _ := c.SetActions(threeActions())

	assert.False(t, c.Apply(MeasurementSet{ListID: id, Widths: []int{1, 1, 1}, ContainerWidth: Unmeasured}))
	assert.False(t, c.Apply(MeasurementSet{ListID: id, Widths: []int{1, 1, 1}, ContainerWidth: 0}))
	snap := c.Snapshot()
	assert.False(t, snap.Settled)
	assert.Equal(t, PhaseUnmeasured, snap.Phase)
	assert.Equal(t, []int{0, 1, 2}, snap.Allocation.Hidden)

	require.True(t, c.Apply(MeasurementSet{ListID: id, Widths: []int{10, 10, 10}, DisclosureWidth: 5, ContainerWidth: 25}))
	before := c.Snapshot()
	assert.False(t, c.Apply(MeasurementSet{ListID: id, Widths: []int{10, 10, 10}, DisclosureWidth: 5, ContainerWidth: 0}))
	after := c.Snapshot()
	assert.True(t, before.Allocation.Equal(after.Allocation), "prior allocation retained")
	assert.True(t, after.Settled)
}

func TestCoordinatorDiscardsStaleMeasurement(t *testing.T) {
	c := newTestCoordinator()
	oldID, _ := c.SetActions(threeActions())
	require.True(t, c.Apply(MeasurementSet{ListID: oldID, Widths: []int{10, 10, 10}, ContainerWidth: 100}))

	next := append(threeActions(), Simple(Action{ID: "d", Label: "Delta"}))
	newID, changed := c.SetActions(next)
	require.True(t, changed)
	require.NotEqual(t, oldID, newID)

	snap := c.Snapshot()
	assert.Equal(t, PhaseStale, snap.Phase)
	assert.True(t, snap.Settled, "settled survives a list change")
	assert.Equal(t, []int{0, 1, 2, 3}, snap.Allocation.Hidden, "no stale indices paired with new content")

	assert.False(t, c.Apply(MeasurementSet{ListID: oldID, Widths: []int{10, 10, 10}, ContainerWidth: 100}))
	assert.Equal(t, PhaseStale, c.Snapshot().Phase)

	require.True(t, c.Apply(MeasurementSet{ListID: newID, Widths: []int{10, 10, 10, 10}, ContainerWidth: 100}))
	assert.Equal(t, []int{0, 1, 2, 3}, c.Snapshot().Allocation.Visible)
}

func TestCoordinatorKeepsIdentityForEqualContent(t *testing.T) {
	c := newTestCoordinator()
	id, _ := c.SetActions(threeActions())
	require.True(t, c.Apply(MeasurementSet{ListID: id, Widths: []int{10, 10, 10}, ContainerWidth: 100}))

	again, changed := c.SetActions(threeActions())
	assert.False(t, changed)
	assert.Equal(t, id, again)
	assert.Equal(t, []int{0, 1, 2}, c.Snapshot().Allocation.Visible)

	disabled := threeActions()
	disabled[0] = Simple(Action{ID: "a", Label: "Alpha", Disabled: true})
	_, changed = c.SetActions(disabled)
	assert.True(t, changed, "content change yields new identity")
}

func TestCoordinatorEmptyListNeverAllocates(t *testing.T) {
	c := newTestCoordinator()
	id, _ := c.SetActions(nil)
	assert.False(t, c.Apply(MeasurementSet{ListID: id, ContainerWidth: 100}))
	snap := c.Snapshot()
	assert.Empty(t, snap.Allocation.Visible)
	assert.Empty(t, snap.Allocation.Hidden)
}

func TestCoordinatorToleratesShortWidths(t *testing.T) {
	c := newTestCoordinator()
	id, _ := c.SetActions(threeActions())
	require.True(t, c.Apply(MeasurementSet{ListID: id, Widths: []int{10}, DisclosureWidth: 5, ContainerWidth: 50}))
	snap := c.Snapshot()
	assert.Equal(t, []int{0}, snap.Allocation.Visible)
	assert.Equal(t, []int{1, 2}, snap.Allocation.Hidden)
}

func TestCoordinatorMeasurementIsIsolatedFromCaller(t *testing.T) {
	c := newTestCoordinator()
	id, _ := c.SetActions(threeActions())
	widths := []int{10, 10, 10}
	require.True(t, c.Apply(MeasurementSet{ListID: id, Widths: widths, ContainerWidth: 100}))
	widths[0] = 500

	ms, ok := c.Measurement()
	require.True(t, ok)
	assert.Equal(t, []int{10, 10, 10}, ms.Widths)
}
