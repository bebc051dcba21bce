package overflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeVisibilityScenarios(t *testing.T) {
	cases := []struct {
		name       string
		widths     []int
		disclosure int
		container  int
		visible    []int
		hidden     []int
	}{
		{
			name:       "reserves disclosure once overflowing",
			widths:     []int{100, 100, 100},
			disclosure: 40,
			container:  250,
			visible:    []int{0, 1},
			hidden:     []int{2},
		},
		{
			name:       "everything fits without reservation",
			widths:     []int{50, 50, 50},
			disclosure: 20,
			container:  1000,
			visible:    []int{0, 1, 2},
		},
		{
			name:       "single action too wide",
			widths:     []int{300},
			disclosure: 50,
			container:  200,
			hidden:     []int{0},
		},
		{
			name:       "empty widths",
			widths:     nil,
			disclosure: 10,
			container:  500,
		},
		{
			name:       "exact fill without overflow is visible",
			widths:     []int{10, 20, 30},
			disclosure: 15,
			container:  60,
			visible:    []int{0, 1, 2},
		},
		{
			name:       "exact fill with reservation is visible",
			widths:     []int{10, 20, 30},
			disclosure: 15,
			container:  45,
			visible:    []int{0, 1},
			hidden:     []int{2},
		},
		{
			name:       "disclosure wider than container hides everything",
			widths:     []int{5, 5},
			disclosure: 80,
			container:  8,
			hidden:     []int{0, 1},
		},
		{
			name:       "fit without reservation beats reserved fit",
			widths:     []int{30, 30},
			disclosure: 10,
			container:  60,
			visible:    []int{0, 1},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeVisibility(tc.widths, tc.disclosure, tc.container)
			assert.Equal(t, tc.visible, got.Visible, "visible")
			assert.Equal(t, tc.hidden, got.Hidden, "hidden")
		})
	}
}

func TestComputeVisibilityNormalisesNegativeInputs(t *testing.T) {
	got := ComputeVisibility([]int{-5, 10, 10}, -3, 15)
	assert.Equal(t, []int{0, 1}, got.Visible)
	assert.Equal(t, []int{2}, got.Hidden)
}

var propertyWidths = [][]int{
	{100, 100, 100},
	{12, 7, 30, 4, 18, 9},
	{1},
	{40, 0, 40, 0, 40},
	{25, 25, 25, 25, 25, 25, 25, 25},
}

func TestComputeVisibilityPartitionProperties(t *testing.T) {
	for _, widths := range propertyWidths {
		for _, disclosure := range []int{0, 5, 40} {
			for container := 0; container <= 320; container++ {
				got := ComputeVisibility(widths, disclosure, container)

				require.Equal(t, len(widths), got.Len(), "partition must cover every index")
				seen := make(map[int]bool, len(widths))
				for _, idx := range append(append([]int{}, got.Visible...), got.Hidden...) {
					require.False(t, seen[idx], "index %d assigned twice", idx)
					require.True(t, idx >= 0 && idx < len(widths), "index %d out of range", idx)
					seen[idx] = true
				}
				requireIncreasing(t, got.Visible)
				requireIncreasing(t, got.Hidden)

				sum := 0
				for _, idx := range got.Visible {
					sum += widths[idx]
				}
				switch {
				case !got.Overflowing():
					require.LessOrEqual(t, sum, container)
				case disclosure > container:
					// no room even for the disclosure: everything overflows
					require.Empty(t, got.Visible,
						"widths=%v disclosure=%d container=%d", widths, disclosure, container)
					require.Equal(t, AllHidden(len(widths)), got)
				default:
					require.LessOrEqual(t, sum+disclosure, container,
						"reserved fit for widths=%v disclosure=%d container=%d", widths, disclosure, container)
				}
			}
		}
	}
}

func TestComputeVisibilityIsMonotonicInContainerWidth(t *testing.T) {
	for _, widths := range propertyWidths {
		for _, disclosure := range []int{0, 5, 40} {
			prev := ComputeVisibility(widths, disclosure, 0)
			for container := 1; container <= 320; container++ {
				next := ComputeVisibility(widths, disclosure, container)
				require.GreaterOrEqual(t, len(next.Visible), len(prev.Visible),
					"visible shrank at container=%d widths=%v", container, widths)
				if len(prev.Visible) > 0 {
					require.Equal(t, prev.Visible, next.Visible[:len(prev.Visible)],
						"previously visible index dropped at container=%d", container)
				}
				prev = next
			}
		}
	}
}

func TestAllHidden(t *testing.T) {
	assert.Empty(t, AllHidden(0).Hidden)
	got := AllHidden(3)
	assert.Empty(t, got.Visible)
	assert.Equal(t, []int{0, 1, 2}, got.Hidden)
}

func requireIncreasing(t *testing.T, indices []int) {
	t.Helper()
	for i := 1; i < len(indices); i++ {
		require.Less(t, indices[i-1], indices[i], "indices not strictly increasing: %v", indices)
	}
}
