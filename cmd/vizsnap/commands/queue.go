package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(queueCmd)
}

var queueCmd = &cobra.Command{
	Use:   "queue <file> <round>",
	Short: "Print the waiting job ids at a round",
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
		if idx >= f.Decoder().Header().RoundCount {
			return fmt.Errorf("round %d out of range (file has %d rounds)", idx, f.Decoder().Header().RoundCount)
		}

		ids := f.QueueAt(idx)
		fmt.Printf("round %d: %d waiting\n", idx, len(ids))
		for _, id := range ids {
			fmt.Printf("  job %d\n", id)
		}

		return nil
	},
}
