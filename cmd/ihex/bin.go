package main

import (
	"github.com/bsm/intelhex"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var binCmd = &cobra.Command{
	Use:   "bin FILE",
	Short: "Flatten a hex file into a padded raw binary.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := readHex(args[0])
		if m.Len() == 0 {
			log.Fatalf("%s contains no data", args[0])
		}
		blocks := m.Blocks()

		base, _ := cmd.Flags().GetUint32("base")
		if !cmd.Flags().Changed("base") {
			base = blocks[0].Address
		}
		size, _ := cmd.Flags().GetInt("size")
		if !cmd.Flags().Changed("size") {
			size = int(blocks[len(blocks)-1].End() - uint64(base))
		}
		if size < 0 {
			log.Fatalf("base 0x%08X lies past the last block", base)
		}
		pad, _ := cmd.Flags().GetUint8("pad")

		out, _ := cmd.Flags().GetString("output")
		writeFile(out, m.ToBinary(base, size, pad))
	},
}

func init() {
	binCmd.Flags().StringP("output", "o", "out.bin", "output file")
	binCmd.Flags().Uint32("base", 0, "base address (default: start of the first block)")
	binCmd.Flags().Int("size", 0, "output size in bytes (default: span up to the last block)")
	binCmd.Flags().Uint8("pad", intelhex.DefaultPad, "fill byte for uncovered addresses")
	rootCmd.AddCommand(binCmd)
}
