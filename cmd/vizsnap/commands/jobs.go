package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var jobsLimit int

func init() {
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 20, "maximum jobs to print, 0 for all")
	rootCmd.AddCommand(jobsCmd)
}

var jobsCmd = &cobra.Command{
	Use:   "jobs <file>",
	Short: "List the job metadata table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFile(args[0])
		if err != nil {
			return err
		}

		dec := f.Decoder()
		cfg := dec.Config()
		jobs := dec.Jobs()

		fmt.Printf("%-8s %-32s %-6s %-8s %-10s %s\n",
			"JOB", "TYPE", "SCALE", "ARRIVED", "COMPLETED", "DURATION")
		for i, j := range jobs {
			if jobsLimit > 0 && i >= jobsLimit {
				fmt.Printf("... %d more\n", len(jobs)-i)

				break
			}

			typeName := fmt.Sprintf("type %d", j.TypeID)
			if jt, ok := cfg.JobTypeByID(int(j.TypeID)); ok {
				typeName = jt.Name
			}

			completed := "-"
			duration := "-"
			if j.Completed() {
				completed = fmt.Sprintf("%d", j.CompletionRound)
				duration = fmt.Sprintf("%.1fs", j.Duration)
			}
			fmt.Printf("%-8d %-32s %-6d %-8d %-10s %s\n",
				j.JobID, typeName, j.ScaleFactor, j.ArrivalRound, completed, duration)
		}

		return nil
	},
}
