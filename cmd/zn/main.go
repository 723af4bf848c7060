package main

import (
	"os"

	"github.com/alnitaka/zenon-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
