package main

import (
	"os"

	"github.com/trezcool/elevate/apps/elevate/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
