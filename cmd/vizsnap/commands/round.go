package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var roundAllocs bool

func init() {
	roundCmd.Flags().BoolVar(&roundAllocs, "allocations", false, "dump the full allocation array")
	rootCmd.AddCommand(roundCmd)
}

var roundCmd = &cobra.Command{
	Use:   "round <file> <round>",
	Short: "Dump one round's telemetry, queue and sharing data",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFile(args[0])
		if err != nil {
			return err
		}

		var idx uint32
		if _, err := fmt.Sscanf(args[1], "%d", &idx); err != nil {
			return fmt.Errorf("invalid round index %q", args[1])
		}

		rounds, err := f.Rounds(idx, 1)
		if err != nil {
			return err
		}
		r := rounds[0]

		fmt.Printf("round:           %d\n", r.Round)
		fmt.Printf("sim time:        %.1fs\n", r.SimTime)
		fmt.Printf("utilization:     %.3f\n", r.Utilization)
		fmt.Printf("jobs running:    %d\n", r.JobsRunning)
		fmt.Printf("jobs queued:     %d\n", r.JobsQueued)
		fmt.Printf("jobs completed:  %d\n", r.JobsCompleted)
		fmt.Printf("avg jct:         %.1fs\n", r.AvgJCT)
		fmt.Printf("completion rate: %.3f\n", r.CompletionRate)
		fmt.Printf("gpu used:        %v\n", r.GPUUsed)

		busy := 0
		for _, jobID := range r.Allocations {
			if jobID != 0 {
				busy++
			}
		}
		fmt.Printf("units busy:      %d/%d\n", busy, len(r.Allocations))
		if roundAllocs {
			fmt.Printf("allocations:     %v\n", r.Allocations)
		}

		if q := f.QueueAt(idx); len(q) > 0 {
			fmt.Printf("queue:           %v\n", q)
		}
		if m := f.SharingAt(idx); len(m) > 0 {
			fmt.Printf("shared units:    %d\n", len(m))
			for unit, slots := range m {
				fmt.Printf("  unit %-5d slots=%v\n", unit, slots)
			}
		}

		return nil
	},
}
