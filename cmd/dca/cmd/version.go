package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("dca version %s\n", version)
		fmt.Println("A dynamic cost averaging backtester")
		fmt.Println("https://github.com/rustyeddy/dca")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
