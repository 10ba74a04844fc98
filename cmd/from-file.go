package cmd

/**
 * from-file.go - pull config from file and run
 */

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

/**
 * Add Root Command
 */
func init() {
	RootCmd.AddCommand(FromFileCmd)
}

/**
 * FromFile Command
 */
var FromFileCmd = &cobra.Command{
	Use:   "from-file <path>",
	Short: "Start using config from file",
	Run: func(cmd *cobra.Command, args []string) {

		if len(args) != 1 {
			cmd.Help()
			return
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		run(data, struct {
			Kind string `json:"kind"`
			Path string `json:"path"`
		}{"file", args[0]})
	},
}
