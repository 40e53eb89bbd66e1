package main

import (
	"os"

	"github.com/rustyeddy/dca/cmd/dca/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
