package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomicstack/tmux-bulk-actions/internal/format/table"
	"github.com/atomicstack/tmux-bulk-actions/internal/overflow"
)

// newAllocateCommand prints how a row of buttons would be split between the
// bar and the overflow menu. Useful when tuning layout files.
func newAllocateCommand() *cobra.Command {
	var disclosure, container int
	cmd := &cobra.Command{
		Use:   "allocate [flags] WIDTH...",
		Short: "Show which button widths fit inline for a container width",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if container <= 0 {
				return fmt.Errorf("--container must be > 0 (got %d)", container)
			}
			widths := make([]int, len(args))
			for i, arg := range args {
				w, err := strconv.Atoi(arg)
				if err != nil {
					return fmt.Errorf("width %d: %w", i, err)
				}
				widths[i] = w
			}
			alloc := overflow.ComputeVisibility(widths, disclosure, container)
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(allocationRows(widths, alloc), "\n"))
			return err
		},
	}
	cmd.Flags().IntVar(&disclosure, "disclosure", 0, "width of the disclosure control in cells")
	cmd.Flags().IntVar(&container, "container", 0, "available width in cells (required, > 0)")
	return cmd
}

func allocationRows(widths []int, alloc overflow.Allocation) []string {
	state := make(map[int]string, alloc.Len())
	for _, idx := range alloc.Visible {
		state[idx] = "inline"
	}
	for _, idx := range alloc.Hidden {
		state[idx] = "overflow"
	}
	rows := make([][]string, 0, len(widths)+2)
	rows = append(rows, []string{"#", "WIDTH", "PLACEMENT"})
	for i, w := range widths {
		rows = append(rows, []string{strconv.Itoa(i), strconv.Itoa(w), state[i]})
	}
	disclosure := "hidden"
	if alloc.Overflowing() {
		disclosure = "shown"
	}
	rows = append(rows, []string{"", "", "disclosure " + disclosure})
	return table.Format(rows, []table.Alignment{table.AlignRight, table.AlignRight, table.AlignLeft})
}
