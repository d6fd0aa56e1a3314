package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print header and config summary of a snapshot file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := loadFile(args[0])
		if err != nil {
			return err
		}

		dec := f.Decoder()
		hdr := dec.Header()
		cfg := dec.Config()

		fmt.Printf("version:       %d\n", hdr.Version)
		fmt.Printf("rounds:        %d\n", hdr.RoundCount)
		fmt.Printf("jobs:          %d\n", hdr.JobCount)
		fmt.Printf("gpu types:     %d\n", hdr.GPUTypeCount)
		fmt.Printf("total units:   %d\n", hdr.TotalUnits)
		fmt.Printf("record size:   %d bytes\n", dec.RecordSize())
		fmt.Printf("sharing:       %v\n", dec.HasSharing())
		fmt.Printf("policy:        %s\n", cfg.Policy)
		for _, gt := range cfg.GPUTypes {
			fmt.Printf("  type %-8s count=%-5d gpus/node=%d\n", gt.Name, gt.Count, gt.GPUsPerNode)
		}
		fmt.Printf("job types:     %d\n", len(cfg.JobTypes))

		return nil
	},
}
