package main

import (
	"github.com/bsm/intelhex"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge FILE...",
	Short: "Merge hex files into one, later files winning on overlap.",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sets := make([]intelhex.BlockSet, 0, len(args))
		for _, path := range args {
			sets = append(sets, intelhex.BlockSet{ID: path, Map: readHex(path)})
		}

		merged, err := intelhex.Flatten(intelhex.DetectOverlaps(sets)).Join(0)
		if err != nil {
			log.Fatalf("cannot merge: %v", err)
		}
		log.Debugf("merged: %d blocks, %d bytes", merged.Len(), merged.ByteLen())

		out, _ := cmd.Flags().GetString("output")
		lineSize, _ := cmd.Flags().GetInt("line-size")
		writeHex(out, merged, lineSize)
	},
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "out.hex", "output file")
	mergeCmd.Flags().Int("line-size", intelhex.DefaultLineSize, "data bytes per record")
	rootCmd.AddCommand(mergeCmd)
}
