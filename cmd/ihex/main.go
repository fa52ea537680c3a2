package main

import (
	"os"

	"github.com/bsm/intelhex"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ihex",
	Short: "Inspect and convert Intel HEX memory images.",
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}

// readHex reads and decodes the hex file at path.
func readHex(path string) *intelhex.MemoryMap {
	text, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("cannot read %s: %v", path, err)
	}

	m, err := intelhex.Decode(string(text), nil)
	if err != nil {
		log.Fatalf("cannot decode %s: %v", path, err)
	}
	log.Debugf("%s: %d blocks, %d bytes", path, m.Len(), m.ByteLen())
	return m
}

// writeHex encodes m and writes it to path, with a trailing newline.
func writeHex(path string, m *intelhex.MemoryMap, lineSize int) {
	text, err := intelhex.Encode(m, &intelhex.EncodeOptions{LineSize: lineSize})
	if err != nil {
		log.Fatalf("cannot encode %s: %v", path, err)
	}
	writeFile(path, []byte(text+"\n"))
}

func writeFile(path string, data []byte) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatalf("cannot write %s: %v", path, err)
	}
	log.Debugf("%s: %d bytes written", path, len(data))
}
