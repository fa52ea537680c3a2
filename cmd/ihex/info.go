package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info FILE",
	Short: "List the blocks of a hex file.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := readHex(args[0])
		for _, b := range m.Blocks() {
			fmt.Printf("0x%08X  %8d bytes\n", b.Address, len(b.Data))
		}
		fmt.Printf("%d blocks, %d bytes total\n", m.Len(), m.ByteLen())
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
