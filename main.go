package main

import (
	"os"

	"github.com/matt/killport-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
