package main

import (
	"github.com/bsm/intelhex"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages FILE",
	Short: "Re-tile a hex file into fixed-size, pad-filled pages.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := readHex(args[0])

		pageSize, _ := cmd.Flags().GetInt("page-size")
		pad, _ := cmd.Flags().GetUint8("pad")
		paged, err := m.Paginate(pageSize, pad)
		if err != nil {
			log.Fatalf("cannot paginate: %v", err)
		}
		log.Debugf("paginated: %d pages of %d bytes", paged.Len(), pageSize)

		out, _ := cmd.Flags().GetString("output")
		lineSize, _ := cmd.Flags().GetInt("line-size")
		writeHex(out, paged, lineSize)
	},
}

func init() {
	pagesCmd.Flags().StringP("output", "o", "out.hex", "output file")
	pagesCmd.Flags().Int("page-size", intelhex.DefaultPageSize, "page size in bytes")
	pagesCmd.Flags().Uint8("pad", intelhex.DefaultPad, "fill byte for uncovered addresses")
	pagesCmd.Flags().Int("line-size", intelhex.DefaultLineSize, "data bytes per record")
	rootCmd.AddCommand(pagesCmd)
}
