package main

import (
	"os"

	"github.com/bsm/intelhex"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image FILE",
	Short: "Convert a hex file into a binary image.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		m := readHex(args[0])

		opts := new(intelhex.ImageOptions)
		if plain, _ := cmd.Flags().GetBool("no-compression"); plain {
			opts.Compression = intelhex.NoCompression
		}

		out, _ := cmd.Flags().GetString("output")
		f, err := os.Create(out)
		if err != nil {
			log.Fatalf("cannot create %s: %v", out, err)
		}
		if err := intelhex.WriteImage(f, m, opts); err != nil {
			f.Close()
			log.Fatalf("cannot write %s: %v", out, err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("cannot close %s: %v", out, err)
		}
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore FILE",
	Short: "Convert a binary image back into a hex file.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			log.Fatalf("cannot open %s: %v", args[0], err)
		}
		defer f.Close()

		fs, err := f.Stat()
		if err != nil {
			log.Fatalf("cannot stat %s: %v", args[0], err)
		}
		m, err := intelhex.ReadImage(f, fs.Size())
		if err != nil {
			log.Fatalf("cannot read %s: %v", args[0], err)
		}
		log.Debugf("%s: %d blocks, %d bytes", args[0], m.Len(), m.ByteLen())

		out, _ := cmd.Flags().GetString("output")
		lineSize, _ := cmd.Flags().GetInt("line-size")
		writeHex(out, m, lineSize)
	},
}

func init() {
	imageCmd.Flags().StringP("output", "o", "out.img", "output file")
	imageCmd.Flags().Bool("no-compression", false, "store the image body uncompressed")
	rootCmd.AddCommand(imageCmd)

	restoreCmd.Flags().StringP("output", "o", "out.hex", "output file")
	restoreCmd.Flags().Int("line-size", intelhex.DefaultLineSize, "data bytes per record")
	rootCmd.AddCommand(restoreCmd)
}
